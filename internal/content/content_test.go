package content

import "testing"

func TestClassify_Unconstrained(t *testing.T) {
	cases := []struct {
		raw  string
		want ContentType
	}{
		{"wifi:S:Home;P:secret;;", WiFi},
		{"WIFI:T:WPA;S:Office;P:pw;;", WiFi},
		{"https://wa.me/1234567890", WhatsApp},
		{"https://api.whatsapp.com/send?phone=123", WhatsApp},
		{"https://chat.whatsapp.com/AbCdEf", WhatsApp},
		{"https://www.youtube.com/watch?v=dQw4w9WgXcQ", YouTube},
		{"https://youtu.be/dQw4w9WgXcQ", YouTube},
		{"user@example.com", Email},
		{"mailto:someone@example.org", Email},
		{"correo: ana@example.es", Email},
		{"01234567890123", Barcode},
		{"12345678", Barcode},
		{"ABC-123", Barcode},
		{"+1 415-555-0000", Phone},
		{"tel:+34600111222", Phone},
		{"cel 600 111 222", Phone},
		{"(555) 123", Phone},
		{"https://example.com/path?q=1", URL},
		{"HTTP://EXAMPLE.COM", URL},
		{"hello world", Text},
		{"hello", Text},
		{"", Text},
		{"   ", Text},
		{"https://", Text},
		{"user\u00a0name@example.com", Text},
		{"ana@exa\u2003mple.com", Text},
		{"https://exa\u2003mple.com", Text},
		{"https://example.com/\u00a0x", Text},
		{"https://exa\ufeffmple.com", Text},
	}
	for _, tc := range cases {
		if got := Classify(tc.raw, ""); got != tc.want {
			t.Fatalf("Classify(%q)=%q, want %q", tc.raw, got, tc.want)
		}
	}
}

func TestClassify_TextExpectedIsUnconstrained(t *testing.T) {
	if got := Classify("https://wa.me/1234567890", Text); got != WhatsApp {
		t.Fatalf("got %q, want whatsapp", got)
	}
}

func TestClassify_Constrained(t *testing.T) {
	cases := []struct {
		raw      string
		expected ContentType
		want     ContentType
	}{
		{"hello", URL, Text},
		{"https://example.com", URL, URL},
		// WhatsApp links also satisfy the generic URL predicate.
		{"https://wa.me/1234567890", URL, URL},
		{"wifi:S:Home;;", Email, Text},
		{"01234567890123", Phone, Phone},
		{"user@example.com", Email, Email},
		{"hello", ContentType("bogus"), Text},
		{"user\u2028x@example.com", Email, Text},
		{"https://a\u00a0b.com", URL, Text},
	}
	for _, tc := range cases {
		if got := Classify(tc.raw, tc.expected); got != tc.want {
			t.Fatalf("Classify(%q, %q)=%q, want %q", tc.raw, tc.expected, got, tc.want)
		}
	}
}

func TestClassify_ResultAlwaysEnumerated(t *testing.T) {
	inputs := []string{
		"", " ", "\t\n", "x", "wifi:", "@", "a@b.c", "+", "++123456",
		"https://wa.me/", "ñandú", "12345678901234567890", "tel", "https://x y",
	}
	for _, raw := range inputs {
		if got := Classify(raw, ""); !got.Valid() {
			t.Fatalf("Classify(%q)=%q not enumerated", raw, got)
		}
		for _, expected := range All() {
			if expected == Text {
				continue
			}
			got := Classify(raw, expected)
			if got != expected && got != Text {
				t.Fatalf("Classify(%q, %q)=%q, want %q or text", raw, expected, got, expected)
			}
		}
	}
}

func TestClassify_TrimsAndFoldsCase(t *testing.T) {
	if got := Classify("  USER@Example.COM  ", ""); got != Email {
		t.Fatalf("got %q, want email", got)
	}
	if got := Classify("\tWIFI:S:Cafe;;\n", WiFi); got != WiFi {
		t.Fatalf("got %q, want wifi", got)
	}
}

func TestParse(t *testing.T) {
	if got, err := Parse(""); err != nil || got != Text {
		t.Fatalf("Parse(\"\")=%q,%v", got, err)
	}
	if got, err := Parse(" WiFi "); err != nil || got != WiFi {
		t.Fatalf("Parse(WiFi)=%q,%v", got, err)
	}
	if _, err := Parse("qr"); err == nil {
		t.Fatalf("expected error for unknown type")
	}
}

func TestNextCyclesAllTypes(t *testing.T) {
	seen := map[ContentType]bool{}
	cur := Text
	for i := 0; i < len(All()); i++ {
		cur = Next(cur)
		seen[cur] = true
	}
	if len(seen) != len(All()) {
		t.Fatalf("Next visited %d types, want %d", len(seen), len(All()))
	}
	if cur != Text {
		t.Fatalf("cycle should return to text, got %q", cur)
	}
}
