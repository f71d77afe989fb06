package yamlutil

import (
	"errors"
	"strings"
	"testing"
)

type sample struct {
	Name    string `yaml:"name"`
	Workers int    `yaml:"workers"`
}

func TestUnmarshalStrict(t *testing.T) {
	t.Parallel()

	var s sample
	if err := UnmarshalStrict([]byte("name: book\nworkers: 2\n"), &s); err != nil {
		t.Fatalf("UnmarshalStrict() error = %v", err)
	}
	if s != (sample{Name: "book", Workers: 2}) {
		t.Errorf("UnmarshalStrict() = %+v, want {book 2}", s)
	}
}

func TestUnmarshalStrict_UnknownField(t *testing.T) {
	t.Parallel()

	var s sample
	err := UnmarshalStrict([]byte("name: book\nextra: rejected\n"), &s)
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !strings.Contains(err.Error(), "extra") {
		t.Errorf("error %q should name the unknown field", err)
	}
}

func TestUnmarshalStrict_TypeMismatch(t *testing.T) {
	t.Parallel()

	var s sample
	if err := UnmarshalStrict([]byte("workers: many\n"), &s); err == nil {
		t.Error("expected error for a string in an int field, got nil")
	}
}

func TestUnmarshalStrict_InputChecks(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		data    []byte
		dest    any
		wantErr error
	}{
		{"nil data", nil, &sample{}, ErrNilData},
		{"empty data", []byte{}, &sample{}, ErrNilData},
		{"nil destination", []byte("name: x"), nil, ErrNilDestination},
		{"too large", []byte("name: " + strings.Repeat("x", MaxInputSize)), &sample{}, ErrInputTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if err := UnmarshalStrict(tt.data, tt.dest); !errors.Is(err, tt.wantErr) {
				t.Errorf("UnmarshalStrict() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
