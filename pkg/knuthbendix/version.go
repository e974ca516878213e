package knuthbendix

// Version is the current version of the gosemigroups Knuth-Bendix
// implementation.
const Version = "0.1.0"
