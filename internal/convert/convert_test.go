package convert

import "testing"

func TestConvertTelex(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"vieets nam", "viết nam"},
		{"chaof banj", "chào bạn"},
		{"tiengs vieets", "tiếng viết"},
		{"ddau", "đau"},
		{"hello team", "hello team"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Convert(tt.in, 0)
			if err != nil {
				t.Fatalf("Convert error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Convert(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestConvertVni(t *testing.T) {
	got, err := Convert("viet65 nam", 1)
	if err != nil {
		t.Fatalf("Convert error: %v", err)
	}
	if got != "việt nam" {
		t.Errorf("Convert = %q, want %q", got, "việt nam")
	}
}

func TestConvertPassthrough(t *testing.T) {
	// Already-accented text and unknown runes flow through untouched.
	got, err := Convert("đã ok", 0)
	if err != nil {
		t.Fatalf("Convert error: %v", err)
	}
	if got != "đã ok" {
		t.Errorf("Convert = %q, want %q", got, "đã ok")
	}
}

func TestConvertNormalizesNFC(t *testing.T) {
	// Decomposed input (a + combining tilde) reaches the engine as one
	// precomposed rune thanks to the norm.NFC stage.
	got, err := Convert("\u0111a\u0303 ok", 0)
	if err != nil {
		t.Fatalf("Convert error: %v", err)
	}
	if got != "\u0111\u00e3 ok" {
		t.Errorf("Convert = %q, want NFC form", got)
	}
}

func TestTransformerReset(t *testing.T) {
	tr := NewTransformer(0)
	if _, _, err := tr.Transform(make([]byte, 64), []byte("vie"), false); err != nil {
		t.Fatalf("Transform error: %v", err)
	}
	tr.Reset()
	if len(tr.word) != 0 {
		t.Error("Reset must drop the pending word")
	}
}
