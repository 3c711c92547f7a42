package lexicon

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/crimson-sun/intake/internal/model"
)

// File is the on-disk YAML form of a lexicon.
//
//	version: team-2026.1
//	cues:
//	  - phrase: urgent
//	    priority: High
//	    strength: 3
//	    strip: anywhere
type File struct {
	Version string    `yaml:"version" validate:"required"`
	Cues    []FileCue `yaml:"cues" validate:"required,min=1,dive"`
}

// FileCue is one cue in a lexicon file.
type FileCue struct {
	Phrase   string `yaml:"phrase" validate:"required"`
	Priority string `yaml:"priority" validate:"required,priority"`
	Strength int    `yaml:"strength" validate:"min=1,max=100"`
	Strip    string `yaml:"strip,omitempty" validate:"omitempty,oneof=trailing anywhere never"`
}

var structValidator = sync.OnceValue(func() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("yaml"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	if err := v.RegisterValidation("priority", func(fl validator.FieldLevel) bool {
		_, err := model.ParsePriority(fl.Field().String())
		return err == nil
	}); err != nil {
		panic(err)
	}
	return v
})

// Load reads and compiles a lexicon from a YAML file.
func Load(path string) (*Lexicon, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("lexicon: read %s: %w", path, err)
	}
	l, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%w (file %s)", err, path)
	}
	return l, nil
}

// Parse compiles a lexicon from YAML bytes. Unknown fields are rejected.
func Parse(data []byte) (*Lexicon, error) {
	var f File
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("lexicon: empty document")
		}
		return nil, fmt.Errorf("lexicon: parse: %w", err)
	}
	return FromFile(f)
}

// FromFile compiles a lexicon from its file form.
func FromFile(f File) (*Lexicon, error) {
	if err := validate(f); err != nil {
		return nil, err
	}
	cues := make([]model.Cue, len(f.Cues))
	for i, fc := range f.Cues {
		p, _ := model.ParsePriority(fc.Priority) // checked by validate
		cues[i] = model.Cue{
			Phrase:   fc.Phrase,
			Priority: p,
			Strength: fc.Strength,
			Strip:    model.StripMode(fc.Strip),
		}
	}
	return New(f.Version, cues)
}

// Dump writes the lexicon as YAML in the format Load accepts.
func Dump(w io.Writer, l *Lexicon) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(toFile(l.Version(), l.Cues())); err != nil {
		return fmt.Errorf("lexicon: encode: %w", err)
	}
	return enc.Close()
}

func toFile(version string, cues []model.Cue) File {
	f := File{Version: version, Cues: make([]FileCue, len(cues))}
	for i, c := range cues {
		f.Cues[i] = FileCue{
			Phrase:   c.Phrase,
			Priority: c.Priority.String(),
			Strength: c.Strength,
			Strip:    string(c.Strip),
		}
	}
	return f
}

// validate checks f against its struct tags and reports every failing field
// by its YAML path, e.g. "cues[2].strength: must satisfy min=1".
func validate(f File) error {
	err := structValidator().Struct(f)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("lexicon: validate: %w", err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		_, path, _ := strings.Cut(fe.Namespace(), ".")
		rule := fe.Tag()
		if fe.Param() != "" {
			rule += "=" + fe.Param()
		}
		msgs = append(msgs, fmt.Sprintf("%s: must satisfy %s", path, rule))
	}
	return fmt.Errorf("lexicon: invalid: %s", strings.Join(msgs, "; "))
}
