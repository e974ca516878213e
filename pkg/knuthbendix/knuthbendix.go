// The Knuth-Bendix completion driver.
//
// This is KBS_2 (Sims, p77-78): orient the presentation's relations into
// pending rules, admit them, then enumerate overlaps between pairs of
// active rules, pushing every unresolved critical pair back through the
// admission machinery, until no overlap remains unresolved or a stopping
// condition fires. The two persistent cursors into the active list let the
// scan survive the removal of rules made redundant mid-enumeration.

package knuthbendix

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"math"
	"sync/atomic"
	"time"
)

// Unlimited disables a cap when passed to WithMaxRules or WithMaxOverlap.
const Unlimited = math.MaxInt

// OverlapPolicy selects the measure by which an overlap between two rule
// left-hand sides AB and BC is compared against the configured maximum.
type OverlapPolicy int

const (
	// ABC measures an overlap as |A| + |BC|.
	ABC OverlapPolicy = iota
	// AB_BC measures an overlap as |AB| + |BC|.
	AB_BC
	// MAX_AB_BC measures an overlap as max(|AB|, |BC|).
	MAX_AB_BC
)

func (p OverlapPolicy) String() string {
	switch p {
	case ABC:
		return "ABC"
	case AB_BC:
		return "AB_BC"
	case MAX_AB_BC:
		return "MAX_AB_BC"
	default:
		return fmt.Sprintf("OverlapPolicy(%d)", int(p))
	}
}

// RewriterKind selects the rewriting strategy backing the engine. Both
// strategies produce identical results; they differ in performance
// profile.
type RewriterKind int

const (
	// RewriteFromLeft indexes rule left-hand sides in an ordered set
	// keyed by reverse-lexicographic comparison; one logarithmic probe
	// per scanned character.
	RewriteFromLeft RewriterKind = iota
	// RewriteTrie indexes rule left-hand sides in an Aho-Corasick trie
	// with suffix links; one transition per scanned character and a
	// sub-quadratic confluence check.
	RewriteTrie
)

func (k RewriterKind) String() string {
	switch k {
	case RewriteFromLeft:
		return "RewriteFromLeft"
	case RewriteTrie:
		return "RewriteTrie"
	default:
		return fmt.Sprintf("RewriterKind(%d)", int(k))
	}
}

// Outcome reports why a completion run stopped. Every outcome other than
// OutcomeConfluent leaves behind a sound rewriting system that can still
// rewrite words; it just may not decide equality completely.
type Outcome int

const (
	// OutcomeConfluent means the rule set is complete: normal forms
	// decide equality in the presented semigroup.
	OutcomeConfluent Outcome = iota
	// OutcomeMaxRules means the active-rule cap was reached. The caller
	// may raise the cap and run again.
	OutcomeMaxRules
	// OutcomeCancelled means the context was cancelled or timed out.
	OutcomeCancelled
	// OutcomeIncomplete means the run finished under a finite overlap
	// bound without reaching confluence.
	OutcomeIncomplete
)

func (o Outcome) String() string {
	switch o {
	case OutcomeConfluent:
		return "confluent"
	case OutcomeMaxRules:
		return "max rules reached"
	case OutcomeCancelled:
		return "cancelled"
	case OutcomeIncomplete:
		return "incomplete"
	default:
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
}

// State identifies the phase the engine is in, for progress reporting
// only; it has no effect on results.
type State int32

const (
	StateIdle State = iota
	StateAddingPendingRules
	StateCheckingConfluence
	StateReducingPendingRules
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateAddingPendingRules:
		return "adding pending rules"
	case StateCheckingConfluence:
		return "checking confluence"
	case StateReducingPendingRules:
		return "reducing pending rules"
	default:
		return fmt.Sprintf("State(%d)", int32(s))
	}
}

// KnuthBendix runs Knuth-Bendix completion on a presentation. Instances
// are single-threaded and non-reentrant: no method may be called
// concurrently with Run, except Snapshot, NumActiveRules,
// NumInactiveRules, NumPendingRules and TotalRules, which read atomic
// counters and are safe from a companion reporting goroutine.
type KnuthBendix struct {
	p   Presentation
	ord Ordering
	rw  rewriter

	maxRules                int
	maxOverlap              int
	checkConfluenceInterval int
	policy                  OverlapPolicy
	kind                    RewriterKind

	logger         *slog.Logger
	reporter       Reporter
	reportInterval time.Duration

	state   atomic.Int32
	started time.Time
}

// Option configures a KnuthBendix engine.
type Option func(*KnuthBendix) error

// WithOrdering sets the reduction ordering used to orient rules. The
// default is shortlex with letters ranked by alphabet position.
func WithOrdering(ord Ordering) Option {
	return func(kb *KnuthBendix) error {
		if ord == nil {
			return fmt.Errorf("knuthbendix: nil ordering")
		}
		kb.ord = ord
		return nil
	}
}

// WithRewriter selects the rewriting strategy. The default is RewriteTrie.
func WithRewriter(kind RewriterKind) Option {
	return func(kb *KnuthBendix) error {
		if kind != RewriteFromLeft && kind != RewriteTrie {
			return fmt.Errorf("knuthbendix: unknown rewriter kind %d", int(kind))
		}
		kb.kind = kind
		return nil
	}
}

// WithOverlapPolicy sets the overlap measure compared against the maximum
// overlap bound. The default is ABC.
func WithOverlapPolicy(p OverlapPolicy) Option {
	return func(kb *KnuthBendix) error {
		if p != ABC && p != AB_BC && p != MAX_AB_BC {
			return fmt.Errorf("knuthbendix: unknown overlap policy %d", int(p))
		}
		kb.policy = p
		return nil
	}
}

// WithMaxRules caps the number of active rules; reaching the cap stops the
// run with OutcomeMaxRules. The default is Unlimited.
func WithMaxRules(n int) Option {
	return func(kb *KnuthBendix) error {
		if n <= 0 {
			return fmt.Errorf("knuthbendix: max rules must be positive, got %d", n)
		}
		kb.maxRules = n
		return nil
	}
}

// WithMaxOverlap skips overlaps whose measure under the overlap policy
// exceeds n. This is a pruning heuristic: a run under a finite bound that
// does not reach confluence stops with OutcomeIncomplete. The default is
// Unlimited.
func WithMaxOverlap(n int) Option {
	return func(kb *KnuthBendix) error {
		if n <= 0 {
			return fmt.Errorf("knuthbendix: max overlap must be positive, got %d", n)
		}
		kb.maxOverlap = n
		return nil
	}
}

// WithCheckConfluenceInterval sets how many overlap resolutions pass
// between interleaved confluence checks during a run. The default is 4096.
func WithCheckConfluenceInterval(n int) Option {
	return func(kb *KnuthBendix) error {
		if n <= 0 {
			return fmt.Errorf("knuthbendix: check confluence interval must be positive, got %d", n)
		}
		kb.checkConfluenceInterval = n
		return nil
	}
}

// WithLogger sets the structured logger used for run-level progress
// messages. The default discards them.
func WithLogger(l *slog.Logger) Option {
	return func(kb *KnuthBendix) error {
		kb.logger = l
		return nil
	}
}

// WithReporter installs a progress reporter that receives periodic
// snapshots during Run from a companion goroutine, plus one final
// snapshot when the run stops.
func WithReporter(r Reporter, interval time.Duration) Option {
	return func(kb *KnuthBendix) error {
		if interval <= 0 {
			return fmt.Errorf("knuthbendix: report interval must be positive, got %v", interval)
		}
		kb.reporter = r
		kb.reportInterval = interval
		return nil
	}
}

// New validates p and returns an engine seeded with its relations. The
// relations are queued as pending rules; they are oriented and admitted
// by the first call to Run.
func New(p *Presentation, opts ...Option) (*KnuthBendix, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	kb := &KnuthBendix{
		p:                       Presentation{Alphabet: p.Alphabet, Rules: append([]RulePair(nil), p.Rules...)},
		maxRules:                Unlimited,
		maxOverlap:              Unlimited,
		checkConfluenceInterval: 4096,
		policy:                  ABC,
		kind:                    RewriteTrie,
	}
	for _, opt := range opts {
		if err := opt(kb); err != nil {
			return nil, err
		}
	}
	if kb.ord == nil {
		ord, err := NewShortLexOrder(p.Alphabet)
		if err != nil {
			return nil, err
		}
		kb.ord = ord
	}
	switch kb.kind {
	case RewriteTrie:
		kb.rw = newRewriteTrie(kb.ord, kb.p.Alphabet)
	case RewriteFromLeft:
		kb.rw = newRewriteFromLeft(kb.ord)
	}
	kb.seed()
	return kb, nil
}

func (kb *KnuthBendix) seed() {
	b := kb.rw.base()
	for _, pair := range kb.p.Rules {
		b.addPendingRule(b.newRuleWith([]byte(pair.LHS), []byte(pair.RHS)))
	}
}

// measure returns the configured size of the overlap between u.lhs = AB
// and v.lhs = BC, where pos is the index in u.lhs at which B starts.
func (kb *KnuthBendix) measure(u, v *Rule, pos int) int {
	switch kb.policy {
	case AB_BC:
		return len(u.lhs) + len(v.lhs)
	case MAX_AB_BC:
		return max(len(u.lhs), len(v.lhs))
	default: // ABC
		return pos + len(v.lhs)
	}
}

func cancelled(ctx context.Context) bool {
	select {
	case <-ctx.Done():
		return true
	default:
		return false
	}
}

// overlap is OVERLAP_2 (Sims, p77): for every proper suffix B of u.lhs
// that is also a proper prefix of v.lhs, the word ABC resolves two ways;
// the resulting candidate equation is queued and processed immediately.
// Processing may deactivate u or v; the identity checks detect that and
// abandon the remaining positions, which are reconsidered when the rule
// is readmitted at the tail of the active list.
func (kb *KnuthBendix) overlap(ctx context.Context, u, v *Rule) {
	b := kb.rw.base()
	limit := len(u.lhs) - min(len(u.lhs), len(v.lhs))
	uID, vID := u.id, v.id
	for pos := len(u.lhs) - 1; pos > limit && u.active && v.active &&
		u.id == uID && v.id == vID && !cancelled(ctx); pos-- {
		if kb.measure(u, v, pos) > kb.maxOverlap {
			break
		}
		if !bytes.HasPrefix(v.lhs, u.lhs[pos:]) {
			continue
		}
		// u = AB -> X and v = BC -> Y; queue AY = XC.
		r := b.newRule()
		r.lhs = append(r.lhs, u.lhs[:pos]...)
		r.lhs = append(r.lhs, v.rhs...)
		r.rhs = append(r.rhs, u.rhs...)
		r.rhs = append(r.rhs, v.lhs[len(u.lhs)-pos:]...)
		if b.addPendingRule(r) {
			kb.state.Store(int32(StateAddingPendingRules))
			kb.rw.processPendingRules()
		}
	}
}

// Run drives completion until the system is confluent, the active-rule
// cap is reached, the overlap bound leaves the run incomplete, or ctx is
// cancelled. Cancellation is polled between discrete units of work, so
// the engine always stops in a consistent state: an interrupted engine
// still rewrites correctly and may be Run again to resume.
func (kb *KnuthBendix) Run(ctx context.Context) Outcome {
	kb.started = time.Now()
	done := kb.startReporting(ctx)
	defer func() {
		kb.state.Store(int32(StateIdle))
		done()
	}()
	outcome := kb.run(ctx)
	kb.log().Info("knuth-bendix stopped",
		"outcome", outcome.String(),
		"active", kb.NumActiveRules(),
		"inactive", kb.NumInactiveRules(),
		"total", kb.TotalRules(),
		"elapsed", time.Since(kb.started))
	return outcome
}

func (kb *KnuthBendix) run(ctx context.Context) Outcome {
	b := kb.rw.base()
	rs := b.rules

	if cancelled(ctx) {
		return OutcomeCancelled
	}
	kb.state.Store(int32(StateCheckingConfluence))
	if b.numPending() == 0 && kb.rw.confluent(ctx) && !cancelled(ctx) {
		return OutcomeConfluent
	}
	if rs.numActive() >= kb.maxRules {
		return OutcomeMaxRules
	}

	// Admit the seed rules and reduce the active set against itself.
	kb.state.Store(int32(StateReducingPendingRules))
	kb.rw.processPendingRules()
	rs.cursors[0] = rs.begin()
	for rs.cursors[0] != rs.end() && !cancelled(ctx) {
		r := rs.cursors[0]
		rs.cursors[0] = r.next
		if b.addPendingRule(rs.copyRule(r)) {
			kb.rw.processPendingRules()
		}
	}

	nr := 0
	rs.cursors[0] = rs.begin()
	for rs.cursors[0] != rs.end() && rs.numActive() < kb.maxRules && !cancelled(ctx) {
		rule1 := rs.cursors[0]
		id1 := rule1.id
		rs.cursors[1] = rs.cursors[0]
		rs.cursors[0] = rs.cursors[0].next

		kb.overlap(ctx, rule1, rule1)
		for rs.cursors[1] != rs.begin() && rule1.active && rule1.id == id1 && !cancelled(ctx) {
			rs.cursors[1] = rs.cursors[1].prev
			rule2 := rs.cursors[1]
			kb.overlap(ctx, rule1, rule2)
			nr++
			if rule1.active && rule1.id == id1 && rule2.active {
				nr++
				kb.overlap(ctx, rule2, rule1)
			}
		}
		if nr > kb.checkConfluenceInterval {
			kb.state.Store(int32(StateCheckingConfluence))
			if kb.rw.confluent(ctx) {
				break
			}
			nr = 0
		}
		if rs.cursors[0] == rs.end() {
			kb.state.Store(int32(StateReducingPendingRules))
			kb.rw.processPendingRules()
		}
	}

	switch {
	case cancelled(ctx):
		return OutcomeCancelled
	case rs.numActive() >= kb.maxRules:
		return OutcomeMaxRules
	case kb.maxOverlap == Unlimited && kb.maxRules == Unlimited:
		// Every overlap was enumerated and resolved.
		b.setCachedConfluent(trilTrue)
		return OutcomeConfluent
	default:
		kb.state.Store(int32(StateCheckingConfluence))
		if kb.rw.confluent(ctx) {
			return OutcomeConfluent
		}
		if cancelled(ctx) {
			return OutcomeCancelled
		}
		return OutcomeIncomplete
	}
}

// RunByOverlapLength runs completion with the overlap bound escalating
// 1, 2, 3, ... until confluence. Small rules are found first, which on
// many presentations terminates earlier than a single unbounded run.
func (kb *KnuthBendix) RunByOverlapLength(ctx context.Context) Outcome {
	savedOverlap := kb.maxOverlap
	savedInterval := kb.checkConfluenceInterval
	defer func() {
		kb.maxOverlap = savedOverlap
		kb.checkConfluenceInterval = savedInterval
	}()

	kb.maxOverlap = 1
	kb.checkConfluenceInterval = Unlimited
	for {
		if cancelled(ctx) {
			return OutcomeCancelled
		}
		if kb.rw.base().numPending() == 0 && kb.rw.confluent(ctx) {
			return OutcomeConfluent
		}
		if outcome := kb.Run(ctx); outcome == OutcomeMaxRules || outcome == OutcomeCancelled {
			return outcome
		}
		kb.maxOverlap++
	}
}

// Confluent reports whether the current rule set is confluent. The
// verdict is cached between mutations of the rule set; a fresh check may
// be interrupted through ctx, in which case Confluent returns false and
// the verdict stays unknown.
func (kb *KnuthBendix) Confluent(ctx context.Context) bool {
	return kb.rw.confluent(ctx)
}

// Rewrite reduces w to its normal form under the current active rules.
// For a fixed rule set Rewrite is a pure function and idempotent; once
// the engine is confluent, two words are equal in the presented
// semigroup exactly when their rewrites coincide.
func (kb *KnuthBendix) Rewrite(w string) string {
	return string(kb.rw.rewrite([]byte(w)))
}

// Equal reports whether u and v represent the same element of the
// presented semigroup. It runs completion first if needed; if completion
// stops early the answer is reliable only when it is true.
func (kb *KnuthBendix) Equal(ctx context.Context, u, v string) (bool, error) {
	for _, w := range [2]string{u, v} {
		if err := kb.p.validateWord(w); err != nil {
			return false, err
		}
	}
	if u == v {
		return true, nil
	}
	kb.Run(ctx)
	return kb.Rewrite(u) == kb.Rewrite(v), nil
}

// ActiveRules returns the current rule set in activation order. The
// result is a sound rewriting system even if completion stopped early.
func (kb *KnuthBendix) ActiveRules() []RulePair {
	rs := kb.rw.base().rules
	out := make([]RulePair, 0, rs.numActive())
	for r := rs.begin(); r != rs.end(); r = r.next {
		out = append(out, RulePair{LHS: string(r.lhs), RHS: string(r.rhs)})
	}
	return out
}

// Presentation returns a copy of the presentation the engine was built
// from.
func (kb *KnuthBendix) Presentation() Presentation {
	return Presentation{Alphabet: kb.p.Alphabet, Rules: append([]RulePair(nil), kb.p.Rules...)}
}

// NumActiveRules is safe to call from a reporting goroutine.
func (kb *KnuthBendix) NumActiveRules() int {
	return int(kb.rw.base().counters.active.Load())
}

// NumInactiveRules is safe to call from a reporting goroutine.
func (kb *KnuthBendix) NumInactiveRules() int {
	return int(kb.rw.base().counters.inactive.Load())
}

// NumPendingRules is safe to call from a reporting goroutine.
func (kb *KnuthBendix) NumPendingRules() int {
	return int(kb.rw.base().counters.pending.Load())
}

// TotalRules reports how many rules have ever been created, including
// recycled ones. Safe to call from a reporting goroutine.
func (kb *KnuthBendix) TotalRules() uint64 {
	return kb.rw.base().counters.total.Load()
}

// State reports the engine's current phase. Safe to call from a
// reporting goroutine.
func (kb *KnuthBendix) State() State {
	return State(kb.state.Load())
}

func (kb *KnuthBendix) log() *slog.Logger {
	if kb.logger != nil {
		return kb.logger
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
