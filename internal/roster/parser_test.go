package roster

import (
	"errors"
	"testing"
)

func TestParseScenarioWithMiddleAndNickname(t *testing.T) {
	id, err := Parse("Smith, John, Jane (Janie) #123")
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	want := Identity{Last: "Smith", Middle: "John", First: "Jane", Nickname: "Janie", ID: "#123"}
	if id != want {
		t.Fatalf("Parse = %+v, want %+v", id, want)
	}
	if got := id.Canonical(); got != "Smith, John, Jane (Janie) #123" {
		t.Fatalf("Canonical = %q", got)
	}
}

func TestParseAcceptedForms(t *testing.T) {
	tests := []struct {
		name string
		line string
		want Identity
	}{
		{
			name: "no middle no nickname",
			line: "Nguyen, Bao #42",
			want: Identity{Last: "Nguyen", First: "Bao", ID: "#42"},
		},
		{
			name: "no middle with nickname",
			line: "Garcia, Maria (Mari) #1000000026",
			want: Identity{Last: "Garcia", First: "Maria", Nickname: "Mari", ID: "#1000000026"},
		},
		{
			name: "wrapped in quotes with padding",
			line: `  "Brown, Elizabeth, Sarah (Sadie) #20"  `,
			want: Identity{Last: "Brown", Middle: "Elizabeth", First: "Sarah", Nickname: "Sadie", ID: "#20"},
		},
		{
			name: "multi word segments and accents",
			line: "Van der Berg, Ana María, José #7",
			want: Identity{Last: "Van der Berg", Middle: "Ana María", First: "José", ID: "#7"},
		},
		{
			name: "id without leading space",
			line: "Lee, Min#9",
			want: Identity{Last: "Lee", First: "Min", ID: "#9"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.line)
			if err != nil {
				t.Fatalf("Parse(%q) returned error: %v", tt.line, err)
			}
			if got != tt.want {
				t.Fatalf("Parse(%q) = %+v, want %+v", tt.line, got, tt.want)
			}
		})
	}
}

func TestParseRejectsMalformedLines(t *testing.T) {
	tests := []struct {
		name string
		line string
	}{
		{"empty", "   "},
		{"no comma", "Smith #1"},
		{"no id", "Smith, Jane"},
		{"id not numeric", "Smith, Jane #abc"},
		{"trailing text", "Smith, Jane #12 extra"},
		{"too many segments", "A, B, C, D #1"},
		{"empty middle", "Smith, , Jane #1"},
		{"empty nickname", "Smith, Jane () #1"},
		{"unterminated nickname", "Smith, Jane (Janie #1"},
		{"text between nickname and id", "Smith, Jane (Janie) Q #1"},
		{"stray close paren", "Smith, Ja)ne #1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.line)
			if err == nil {
				t.Fatalf("expected error for %q", tt.line)
			}
			if !errors.Is(err, ErrMalformedLine) {
				t.Fatalf("expected ErrMalformedLine, got %v", err)
			}
			var lineErr *LineError
			if !errors.As(err, &lineErr) {
				t.Fatalf("expected *LineError, got %T", err)
			}
			if lineErr.Text != tt.line {
				t.Fatalf("LineError.Text = %q, want %q", lineErr.Text, tt.line)
			}
		})
	}
}

func TestFormatParseRoundTrip(t *testing.T) {
	identities := []Identity{
		{Last: "Smith", Middle: "John", First: "Jane", Nickname: "Janie", ID: "#123"},
		{Last: "Smith", First: "Jane", ID: "#1"},
		{Last: "O'Neil", Middle: "Rose", First: "Kathleen", ID: "#55"},
		{Last: "Żółć", First: "Łukasz", Nickname: "Luke", ID: "#000123"},
		{Last: "De La Cruz", Middle: "Mary Ann", First: "Sofia", Nickname: "Sof", ID: "#8"},
	}
	for _, id := range identities {
		got, err := Parse(Format(id))
		if err != nil {
			t.Fatalf("Parse(Format(%+v)) error: %v", id, err)
		}
		if got != id {
			t.Fatalf("round trip mismatch: got %+v, want %+v", got, id)
		}
	}
}

func TestLookupKeys(t *testing.T) {
	id := Identity{Last: "Smith", Middle: "John", First: "Jane", Nickname: "Janie", ID: "#123"}
	want := []string{"jane smith", "janie smith", "jane s.", "janie s.", "j. smith", "j. smith"}
	got := id.LookupKeys()
	if len(got) != len(want) {
		t.Fatalf("LookupKeys = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("LookupKeys[%d] = %q, want %q", i, got[i], want[i])
		}
	}

	plain := Identity{Last: "Müller", First: "Zoë", ID: "#2"}
	keys := plain.LookupKeys()
	wantPlain := []string{"zoe muller", "zoe m.", "z. muller"}
	if len(keys) != len(wantPlain) {
		t.Fatalf("LookupKeys = %v, want %v", keys, wantPlain)
	}
	for i := range wantPlain {
		if keys[i] != wantPlain[i] {
			t.Fatalf("LookupKeys[%d] = %q, want %q", i, keys[i], wantPlain[i])
		}
	}
}
