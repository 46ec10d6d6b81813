package solver_test

import (
	"errors"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/fptkit/paraco/pkg/paraco"
	"github.com/fptkit/paraco/pkg/paraco/model"
	"github.com/fptkit/paraco/pkg/paraco/solver"
)

func TestSolver(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Solver Suite")
}

type countingTracer struct {
	expanded []paraco.Problem
}

func (t *countingTracer) Trace(p paraco.SearchPosition) {
	t.expanded = append(t.expanded, p.Current())
}

func problem(s string) paraco.Problem {
	return paraco.ParseProblem(s)
}

var _ = Describe("Solver", func() {
	var (
		m *model.Model
		s *solver.Solver
	)

	BeforeEach(func() {
		m = model.New("DBU", "a", "b", "c")
		var err error
		s, err = solver.New(m)
		Expect(err).ToNot(HaveOccurred())
	})

	It("should find a tractable subset of the query", func() {
		Expect(m.RegisterFact(problem("a c"), paraco.Tractable)).To(Succeed())

		proof, err := s.Solve(problem("a b c"), paraco.Tractable)
		Expect(err).ToNot(HaveOccurred())
		Expect(proof.Found).To(BeTrue())
		Expect(proof.Novel).To(BeTrue())
		Expect(proof.Fact).To(Equal(problem("a c")))
		Expect(proof.Derivation).To(Equal(solver.Derivation{problem("a c"), problem("a b c")}))
		Expect(proof.Derivation.String()).To(Equal("{a, c} -> {a, b, c}"))
	})

	It("should follow user reductions", func() {
		Expect(m.AddReduction(problem("a"), problem("b"))).To(Succeed())
		Expect(m.RegisterFact(problem("b c"), paraco.Tractable)).To(Succeed())

		proof, err := s.Solve(problem("a c"), paraco.Tractable)
		Expect(err).ToNot(HaveOccurred())
		Expect(proof.Found).To(BeTrue())
		Expect(proof.Derivation).To(Equal(solver.Derivation{problem("b c"), problem("a c")}))
	})

	It("should order intractable derivations from the query to the fact", func() {
		Expect(m.RegisterFact(problem("a b"), paraco.Intractable)).To(Succeed())

		proof, err := s.Solve(problem("a"), paraco.Intractable)
		Expect(err).ToNot(HaveOccurred())
		Expect(proof.Found).To(BeTrue())
		Expect(proof.Derivation).To(Equal(solver.Derivation{problem("a"), problem("a b")}))
	})

	It("should chain several steps", func() {
		m2 := model.New("DBU", "a", "b", "c", "d")
		Expect(m2.AddReduction(problem("d"), problem("c"))).To(Succeed())
		Expect(m2.AddReduction(problem("c"), problem("b"))).To(Succeed())
		Expect(m2.RegisterFact(problem("b"), paraco.Tractable)).To(Succeed())
		s2, err := solver.New(m2)
		Expect(err).ToNot(HaveOccurred())

		proof, err := s2.Solve(problem("d"), paraco.Tractable)
		Expect(err).ToNot(HaveOccurred())
		Expect(proof.Found).To(BeTrue())
		Expect(proof.Derivation).To(Equal(solver.Derivation{problem("b"), problem("c"), problem("d")}))
	})

	It("should return a single-step derivation for a known fact", func() {
		Expect(m.RegisterFact(problem("b"), paraco.Tractable)).To(Succeed())

		proof, err := s.Solve(problem("b"), paraco.Tractable)
		Expect(err).ToNot(HaveOccurred())
		Expect(proof.Found).To(BeTrue())
		Expect(proof.Novel).To(BeFalse())
		Expect(proof.Derivation).To(Equal(solver.Derivation{problem("b")}))
		Expect(proof.Expanded).To(Equal(0))
	})

	It("should report no derivation without failing", func() {
		Expect(m.RegisterFact(problem("a b"), paraco.Tractable)).To(Succeed())

		proof, err := s.Solve(problem("a"), paraco.Tractable)
		Expect(err).ToNot(HaveOccurred())
		Expect(proof.Found).To(BeFalse())
		Expect(proof.Derivation).To(BeEmpty())
	})

	It("should terminate on cyclic reductions", func() {
		Expect(m.AddReduction(problem("a"), problem("a"))).To(Succeed())
		Expect(m.AddReduction(problem("a"), problem("b"))).To(Succeed())
		Expect(m.AddReduction(problem("b"), problem("a"))).To(Succeed())

		proof, err := s.Solve(problem("a"), paraco.Tractable)
		Expect(err).ToNot(HaveOccurred())
		Expect(proof.Found).To(BeFalse())
		Expect(proof.Expanded).To(Equal(2))
	})

	It("should reject queries outside the universe", func() {
		_, err := s.Solve(problem("a z"), paraco.Tractable)
		var invalid paraco.InvalidParameters
		Expect(errors.As(err, &invalid)).To(BeTrue())
		Expect(invalid).To(ConsistOf("z"))
	})

	It("should not modify the model", func() {
		Expect(m.RegisterFact(problem("a"), paraco.Tractable)).To(Succeed())
		_, err := s.Solve(problem("a b c"), paraco.Tractable)
		Expect(err).ToNot(HaveOccurred())
		Expect(m.Facts().Problems(paraco.Tractable)).To(Equal([]paraco.Problem{problem("a")}))
	})

	It("should register novel proofs only", func() {
		Expect(m.RegisterFact(problem("a"), paraco.Tractable)).To(Succeed())

		proof, err := s.Solve(problem("a b"), paraco.Tractable)
		Expect(err).ToNot(HaveOccurred())
		changed, err := proof.Register(m)
		Expect(err).ToNot(HaveOccurred())
		Expect(changed).To(BeTrue())
		Expect(m.IsKnown(problem("a b"), paraco.Tractable)).To(BeTrue())

		proof, err = s.Solve(problem("a b"), paraco.Tractable)
		Expect(err).ToNot(HaveOccurred())
		changed, err = proof.Register(m)
		Expect(err).ToNot(HaveOccurred())
		Expect(changed).To(BeFalse())

		proof, err = s.Solve(problem("c"), paraco.Tractable)
		Expect(err).ToNot(HaveOccurred())
		changed, err = proof.Register(m)
		Expect(err).ToNot(HaveOccurred())
		Expect(changed).To(BeFalse())
		Expect(m.IsKnown(problem("c"), paraco.Tractable)).To(BeFalse())
	})

	It("should trace every expansion", func() {
		tracer := &countingTracer{}
		traced, err := solver.New(m, solver.WithTracer(tracer))
		Expect(err).ToNot(HaveOccurred())

		proof, err := traced.Solve(problem("a b c"), paraco.Tractable)
		Expect(err).ToNot(HaveOccurred())
		Expect(proof.Found).To(BeFalse())
		Expect(tracer.expanded).To(HaveLen(proof.Expanded))
		Expect(tracer.expanded[0]).To(Equal(problem("a b c")))
		Expect(tracer.expanded).To(ConsistOf(
			problem("a b c"), problem("a b"), problem("a c"), problem("b c"),
			problem("a"), problem("b"), problem("c"),
		))
	})
})
