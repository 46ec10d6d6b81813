package session

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/fptkit/paraco/internal/logging"
	"github.com/fptkit/paraco/pkg/paraco"
	"github.com/fptkit/paraco/pkg/paraco/model"
	"github.com/fptkit/paraco/pkg/paraco/store"
)

// FileEnv names the environment variable holding the default
// knowledge-base path.
const FileEnv = "PARACO_FILE"

// Session carries the global flags of the CLI and the helpers every
// command uses to load, save and report on a knowledge base.
type Session struct {
	Path   string
	Format string
	Debug  bool
	Trace  bool

	Logger *logrus.Entry
	Err    io.Writer
}

func New() *Session {
	return &Session{
		Logger: logging.Discard(),
		Err:    os.Stderr,
	}
}

// BindFlags registers the global flags on flags.
func (s *Session) BindFlags(flags *pflag.FlagSet) {
	flags.StringVarP(&s.Path, "file", "f", os.Getenv(FileEnv), "path of the knowledge-base document (env "+FileEnv+")")
	flags.StringVar(&s.Format, "format", string(store.FormatAuto), "document format: auto, json or yaml")
	flags.BoolVar(&s.Debug, "debug", false, "enable debug logging")
	flags.BoolVar(&s.Trace, "trace", false, "trace every expanded problem to stderr")
}

// Setup configures logging for a command run; it is meant to be used as
// a PersistentPreRunE.
func (s *Session) Setup(cmd *cobra.Command, _ []string) error {
	s.Err = cmd.ErrOrStderr()
	s.Logger = logging.New(s.Err, s.Debug)
	if _, err := store.ParseFormat(s.Format); err != nil {
		return err
	}
	return nil
}

func (s *Session) format() store.Format {
	f, _ := store.ParseFormat(s.Format)
	return f
}

func (s *Session) requirePath() error {
	if s.Path == "" {
		return errors.New("no knowledge base given: use --file or set " + FileEnv)
	}
	return nil
}

// Load reads the knowledge base named by the --file flag.
func (s *Session) Load() (*model.Model, error) {
	if err := s.requirePath(); err != nil {
		return nil, err
	}
	m, err := store.Load(s.Path, s.format())
	if err != nil {
		return nil, err
	}
	s.Logger.WithFields(logrus.Fields{
		"file":       s.Path,
		"parameters": m.Universe().Len(),
		"reductions": m.Reductions().Len(),
	}).Debug("loaded knowledge base")
	return m, nil
}

// Save writes m back to the knowledge base named by the --file flag.
func (s *Session) Save(m *model.Model) error {
	if err := s.requirePath(); err != nil {
		return err
	}
	if err := store.Save(m, s.Path, s.format()); err != nil {
		return err
	}
	s.Logger.WithField("file", s.Path).Debug("saved knowledge base")
	return nil
}

// Tracer returns the tracer selected by the --trace flag.
func (s *Session) Tracer() paraco.Tracer {
	if s.Trace {
		return paraco.LoggingTracer{Writer: s.Err}
	}
	return paraco.DefaultTracer{}
}

// ParseReduction splits command arguments of the form
// "a b > c" (as one or several arguments) into pattern and replacement.
func ParseReduction(args []string) (paraco.Problem, paraco.Problem, error) {
	parts := strings.Split(strings.Join(args, " "), ">")
	if len(parts) != 2 {
		return "", "", fmt.Errorf("invalid reduction %q: expected <pattern...> > <replacement...>", strings.Join(args, " "))
	}
	return paraco.ParseProblem(parts[0]), paraco.ParseProblem(parts[1]), nil
}

// List renders problems as a bullet list.
func List(w io.Writer, problems []paraco.Problem) {
	for _, p := range problems {
		fmt.Fprintf(w, "- %s\n", p)
	}
}
