package content

import "testing"

func TestParseWiFi(t *testing.T) {
	n, ok := ParseWiFi(`WIFI:T:WPA;S:My\;Net;P:p\\ss;H:true;;`)
	if !ok {
		t.Fatalf("expected wifi payload")
	}
	if n.SSID != "My;Net" {
		t.Fatalf("SSID=%q", n.SSID)
	}
	if n.Password != `p\ss` {
		t.Fatalf("Password=%q", n.Password)
	}
	if n.Auth != "WPA" || !n.Hidden {
		t.Fatalf("unexpected network: %+v", n)
	}

	if _, ok := ParseWiFi("wifi:P:nossid;;"); ok {
		t.Fatalf("payload without SSID should not parse")
	}
	if _, ok := ParseWiFi("https://example.com"); ok {
		t.Fatalf("non-wifi payload should not parse")
	}
}

func TestActionFor(t *testing.T) {
	cases := map[ContentType]Action{
		URL:      ActionOpen,
		WhatsApp: ActionOpen,
		YouTube:  ActionOpen,
		Email:    ActionMail,
		Phone:    ActionCall,
		WiFi:     ActionNone,
		Barcode:  ActionNone,
		Text:     ActionNone,
	}
	for typ, want := range cases {
		if got := ActionFor(typ); got != want {
			t.Fatalf("ActionFor(%q)=%v, want %v", typ, got, want)
		}
	}
}

func TestDescriptionKeyFallsBackToText(t *testing.T) {
	if got := DescriptionKey(ContentType("nope")); got != "content.desc.text" {
		t.Fatalf("got %q", got)
	}
	if got := DescriptionKey(Phone); got != "content.desc.phone" {
		t.Fatalf("got %q", got)
	}
}
