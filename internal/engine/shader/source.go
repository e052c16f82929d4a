package shader

import (
	"fmt"
	"io/fs"
	"os"
	"path"
	"slices"
	"strings"

	"go.uber.org/zap"

	"github.com/Faultbox/shaderkit/internal/logger"
)

const (
	// DefaultBasePath is the directory shader sources are loaded from.
	DefaultBasePath = "Data/Shaders/"
	// DefaultSuffix is appended to logical source names.
	DefaultSuffix = ".glsl"
	// DefaultIncludeKeyword starts an include line.
	DefaultIncludeKeyword = "#include"
)

// Source is a fully resolved shader source.
type Source struct {
	// Name is the logical name passed to Resolve.
	Name string
	// Text is the source with includes expanded and #line markers inserted.
	Text string
	// Files lists every file read, indexed by the file number used in the
	// #line markers. Files[0] is the top-level file.
	Files []string
}

// Locate returns the path for a file index reported in a compiler log.
func (s *Source) Locate(index int) (string, bool) {
	if index < 0 || index >= len(s.Files) {
		return "", false
	}
	return s.Files[index], true
}

// Resolver loads shader sources and expands include directives.
//
// An include line is replaced by "#line 1 <n>", the included text and
// "#line <next> <m>", so compiler diagnostics keep pointing at the original
// file and line. A file is included at most once per Resolve call; repeated
// includes are dropped with a warning.
type Resolver struct {
	fsys    fs.FS
	suffix  string
	keyword string
	log     *zap.Logger
}

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

// WithSuffix sets the file suffix appended to logical names.
func WithSuffix(suffix string) ResolverOption {
	return func(r *Resolver) { r.suffix = suffix }
}

// WithIncludeKeyword sets the token that starts an include line.
func WithIncludeKeyword(keyword string) ResolverOption {
	return func(r *Resolver) { r.keyword = keyword }
}

// WithResolverLogger sets the logger used for include warnings.
func WithResolverLogger(log *zap.Logger) ResolverOption {
	return func(r *Resolver) { r.log = log }
}

// NewResolver creates a resolver reading from fsys.
func NewResolver(fsys fs.FS, opts ...ResolverOption) *Resolver {
	r := &Resolver{
		fsys:    fsys,
		suffix:  DefaultSuffix,
		keyword: DefaultIncludeKeyword,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.log == nil {
		r.log = logger.Named("shader.source")
	}
	return r
}

// DirResolver creates a resolver reading from a directory on disk.
func DirResolver(basePath string, opts ...ResolverOption) *Resolver {
	if basePath == "" {
		basePath = DefaultBasePath
	}
	return NewResolver(os.DirFS(basePath), opts...)
}

// resolveState is the visited-file list for one top-level Resolve call.
type resolveState struct {
	files []string
}

// Resolve loads name plus the configured suffix and expands its includes.
func (r *Resolver) Resolve(name string) (*Source, error) {
	st := &resolveState{}
	text, err := r.resolve(st, r.filename(name))
	if err != nil {
		return nil, err
	}
	return &Source{Name: name, Text: text, Files: st.files}, nil
}

func (r *Resolver) filename(name string) string {
	name = path.Clean(strings.ReplaceAll(name, "\\", "/"))
	if !strings.HasSuffix(name, r.suffix) {
		name += r.suffix
	}
	return name
}

func (r *Resolver) resolve(st *resolveState, file string) (string, error) {
	index := len(st.files)
	st.files = append(st.files, file)

	data, err := fs.ReadFile(r.fsys, file)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %w", ErrSourceNotFound, file, err)
	}

	var b strings.Builder
	dir := path.Dir(file)
	for i, line := range splitLines(string(data)) {
		target, ok := r.includeTarget(line)
		if !ok {
			b.WriteString(line)
			b.WriteByte('\n')
			continue
		}

		child := r.filename(path.Join(dir, target))
		if slices.Contains(st.files, child) {
			r.log.Warn("skipping repeated include",
				zap.String("file", file),
				zap.Int("line", i+1),
				zap.String("include", child),
			)
			// Keep the line so numbering after it stays correct.
			b.WriteByte('\n')
			continue
		}

		childIndex := len(st.files)
		text, err := r.resolve(st, child)
		if err != nil {
			return "", err
		}
		fmt.Fprintf(&b, "#line 1 %d\n", childIndex)
		b.WriteString(text)
		fmt.Fprintf(&b, "#line %d %d\n", i+2, index)
	}
	return b.String(), nil
}

// includeTarget returns the path of an include line.
func (r *Resolver) includeTarget(line string) (string, bool) {
	fields := strings.Fields(line)
	if len(fields) < 2 || fields[0] != r.keyword {
		return "", false
	}
	return fields[1], true
}

func splitLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.TrimSuffix(text, "\n")
	if text == "" {
		return nil
	}
	return strings.Split(text, "\n")
}
