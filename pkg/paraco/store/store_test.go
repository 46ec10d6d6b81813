package store_test

import (
	"bytes"
	"errors"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/fptkit/paraco/pkg/paraco"
	"github.com/fptkit/paraco/pkg/paraco/model"
	"github.com/fptkit/paraco/pkg/paraco/store"
)

func TestStore(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Store Suite")
}

func problem(s string) paraco.Problem {
	return paraco.ParseProblem(s)
}

func randomProblem(r *rand.Rand, params []string) paraco.Problem {
	var picked []string
	for _, p := range params {
		if r.Intn(2) == 0 {
			picked = append(picked, p)
		}
	}
	return paraco.NewProblem(picked...)
}

func randomModel(r *rand.Rand) *model.Model {
	params := []string{"k", "n", "deg", "tw", "vc"}
	m := model.New("random", params...)
	for i := 0; i < r.Intn(6); i++ {
		Expect(m.RegisterFact(randomProblem(r, params), paraco.Kinds[r.Intn(2)])).To(Succeed())
	}
	for i := 0; i < r.Intn(6); i++ {
		Expect(m.AddReduction(randomProblem(r, params), randomProblem(r, params))).To(Succeed())
	}
	return m
}

func sample() *model.Model {
	m := model.New("DBU", "a", "b", "c")
	Expect(m.RegisterFact(problem("a c"), paraco.Tractable)).To(Succeed())
	Expect(m.RegisterFact(problem("b"), paraco.Intractable)).To(Succeed())
	Expect(m.AddReduction(problem("a"), problem("b"))).To(Succeed())
	Expect(m.AddReduction(problem("a"), problem("c"))).To(Succeed())
	return m
}

const sampleJSON = `{
    "name": "DBU",
    "parameters": "a b c",
    "reductions": {
        "a": [
            "b",
            "c"
        ]
    },
    "antireductions": {
        "b": [
            "a"
        ],
        "c": [
            "a"
        ]
    },
    "tractable": {
        "a c": true
    },
    "intractable": {
        "b": true
    },
    "version": "1.0.0"
}
`

var _ = Describe("Encode", func() {
	It("should write the indented JSON document", func() {
		buf := &bytes.Buffer{}
		Expect(store.Encode(sample(), buf, store.FormatJSON)).To(Succeed())
		Expect(buf.String()).To(Equal(sampleJSON))
	})

	It("should write YAML", func() {
		buf := &bytes.Buffer{}
		Expect(store.Encode(sample(), buf, store.FormatYAML)).To(Succeed())
		Expect(buf.String()).To(ContainSubstring("name: DBU\n"))
		Expect(buf.String()).To(ContainSubstring("parameters: a b c\n"))
	})
})

var _ = Describe("Decode", func() {
	It("should read the JSON document", func() {
		m, err := store.Decode(strings.NewReader(sampleJSON), store.FormatJSON)
		Expect(err).ToNot(HaveOccurred())
		Expect(m.Equal(sample())).To(BeTrue())
	})

	It("should read documents without a version", func() {
		doc := strings.Replace(sampleJSON, `,
    "version": "1.0.0"`, "", 1)
		m, err := store.Decode(strings.NewReader(doc), store.FormatJSON)
		Expect(err).ToNot(HaveOccurred())
		Expect(m.Equal(sample())).To(BeTrue())
	})

	DescribeTable("round trip", func(format store.Format) {
		r := rand.New(rand.NewSource(5))
		for i := 0; i < 25; i++ {
			m := randomModel(r)
			buf := &bytes.Buffer{}
			Expect(store.Encode(m, buf, format)).To(Succeed())
			decoded, err := store.Decode(buf, format)
			Expect(err).ToNot(HaveOccurred())
			Expect(decoded.Equal(m)).To(BeTrue())
		}
	},
		Entry("json", store.FormatJSON),
		Entry("yaml", store.FormatYAML),
	)

	DescribeTable("malformed documents", func(format store.Format, doc string) {
		_, err := store.Decode(strings.NewReader(doc), format)
		var malformed *store.MalformedDocument
		Expect(errors.As(err, &malformed)).To(BeTrue(), "%v", err)
	},
		Entry("invalid JSON", store.FormatJSON, `{"name": `),
		Entry("not an object", store.FormatJSON, `["name"]`),
		Entry("missing field", store.FormatJSON, `{"name": "x", "parameters": "a", "reductions": {}, "antireductions": {}, "tractable": {}}`),
		Entry("unknown parameter in a fact", store.FormatJSON, `{"name": "x", "parameters": "a", "reductions": {}, "antireductions": {}, "tractable": {"a z": true}, "intractable": {}}`),
		Entry("unknown parameter in a reduction", store.FormatJSON, `{"name": "x", "parameters": "a", "reductions": {"a": ["z"]}, "antireductions": {"z": ["a"]}, "tractable": {}, "intractable": {}}`),
		Entry("antireductions not inverse", store.FormatJSON, `{"name": "x", "parameters": "a b", "reductions": {"a": ["b"]}, "antireductions": {}, "tractable": {}, "intractable": {}}`),
		Entry("antireductions with extra entries", store.FormatJSON, `{"name": "x", "parameters": "a b", "reductions": {"a": ["b"]}, "antireductions": {"b": ["a", "a"]}, "tractable": {}, "intractable": {}}`),
		Entry("invalid version", store.FormatJSON, `{"name": "x", "parameters": "a", "reductions": {}, "antireductions": {}, "tractable": {}, "intractable": {}, "version": "one"}`),
		Entry("invalid YAML", store.FormatYAML, "name: [x\n"),
		Entry("empty YAML", store.FormatYAML, ""),
		Entry("YAML missing field", store.FormatYAML, "name: x\nparameters: a\n"),
	)

	It("should reject documents from a newer major version", func() {
		doc := strings.Replace(sampleJSON, `"1.0.0"`, `"2.1.0"`, 1)
		_, err := store.Decode(strings.NewReader(doc), store.FormatJSON)
		var unsupported store.UnsupportedVersion
		Expect(errors.As(err, &unsupported)).To(BeTrue())
	})

	It("should accept documents from a newer minor version", func() {
		doc := strings.Replace(sampleJSON, `"1.0.0"`, `"1.3.0"`, 1)
		_, err := store.Decode(strings.NewReader(doc), store.FormatJSON)
		Expect(err).ToNot(HaveOccurred())
	})
})

var _ = Describe("Save and Load", func() {
	var dir string

	BeforeEach(func() {
		var err error
		dir, err = os.MkdirTemp("", "paraco-store-")
		Expect(err).ToNot(HaveOccurred())
		DeferCleanup(os.RemoveAll, dir)
	})

	DescribeTable("persist a model", func(name string) {
		path := filepath.Join(dir, name)
		Expect(store.Save(sample(), path, store.FormatAuto)).To(Succeed())

		m, err := store.Load(path, store.FormatAuto)
		Expect(err).ToNot(HaveOccurred())
		Expect(m.Equal(sample())).To(BeTrue())

		entries, err := os.ReadDir(dir)
		Expect(err).ToNot(HaveOccurred())
		Expect(entries).To(HaveLen(1))
	},
		Entry("json", "dbu.json"),
		Entry("yaml", "dbu.yaml"),
		Entry("yml", "dbu.yml"),
		Entry("no extension", "dbu"),
	)

	It("should overwrite an existing document", func() {
		path := filepath.Join(dir, "dbu.json")
		Expect(store.Save(sample(), path, store.FormatAuto)).To(Succeed())

		m := sample()
		Expect(m.RegisterFact(problem("a b c"), paraco.Tractable)).To(Succeed())
		Expect(store.Save(m, path, store.FormatAuto)).To(Succeed())

		loaded, err := store.Load(path, store.FormatAuto)
		Expect(err).ToNot(HaveOccurred())
		Expect(loaded.IsKnown(problem("a b c"), paraco.Tractable)).To(BeTrue())
	})

	It("should fail to save into a missing directory", func() {
		Expect(store.Save(sample(), filepath.Join(dir, "missing", "dbu.json"), store.FormatAuto)).ToNot(Succeed())
	})

	It("should fail to load a missing file", func() {
		_, err := store.Load(filepath.Join(dir, "dbu.json"), store.FormatAuto)
		Expect(errors.Is(err, os.ErrNotExist)).To(BeTrue())
	})

	It("should report malformed files", func() {
		path := filepath.Join(dir, "dbu.json")
		Expect(os.WriteFile(path, []byte("not json"), 0o600)).To(Succeed())
		_, err := store.Load(path, store.FormatAuto)
		var malformed *store.MalformedDocument
		Expect(errors.As(err, &malformed)).To(BeTrue())
	})
})

var _ = Describe("Format", func() {
	DescribeTable("resolve", func(format store.Format, path string, expected store.Format) {
		Expect(format.Resolve(path)).To(Equal(expected))
	},
		Entry("json extension", store.FormatAuto, "kb.json", store.FormatJSON),
		Entry("yaml extension", store.FormatAuto, "kb.YAML", store.FormatYAML),
		Entry("unknown extension", store.FormatAuto, "kb.txt", store.FormatJSON),
		Entry("explicit format wins", store.FormatYAML, "kb.json", store.FormatYAML),
	)

	It("should parse names", func() {
		f, err := store.ParseFormat("yml")
		Expect(err).ToNot(HaveOccurred())
		Expect(f).To(Equal(store.FormatYAML))
		_, err = store.ParseFormat("xml")
		Expect(err).To(HaveOccurred())
	})
})
