package locale

import (
	"slices"
	"testing"
	"testing/fstest"
)

func TestSupported(t *testing.T) {
	got := Supported()
	if !slices.Equal(got, []string{English, Russian}) {
		t.Errorf("Supported() = %v", got)
	}
}

func TestPrinter(t *testing.T) {
	for _, tc := range []struct {
		lang string
		want string
	}{
		{"en", "💾 Progress saved."},
		{"ru", "💾 Прогресс сохранен."},
		{"", "💾 Progress saved."},
		{"xx-not-a-language", "💾 Progress saved."},
		{"de", "💾 Progress saved."},
	} {
		if got := Printer(tc.lang).Sprintf("💾 Progress saved."); got != tc.want {
			t.Errorf("Printer(%q) = %q, want %q", tc.lang, got, tc.want)
		}
	}
}

func TestPrinterFormatsArguments(t *testing.T) {
	got := Printer(Russian).Sprintf("❌ Invalid choice! Enter a number from 1 to %d.", 4)
	if want := "❌ Неверный выбор! Введи число от 1 до 4."; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestText(t *testing.T) {
	if got := Text(Printer(Russian), "Legendary"); got != "Легендарный" {
		t.Errorf("Text(ru) = %q", got)
	}
	if got := Text(Printer(English), "Legendary"); got != "Legendary" {
		t.Errorf("Text(en) = %q", got)
	}
	if got := Text(Printer(Russian), "no such key"); got != "no such key" {
		t.Errorf("unknown key = %q", got)
	}
	if got := Text(Printer(English), "100% Uptime Badge"); got != "100% Uptime Badge" {
		t.Errorf("percent sign = %q", got)
	}
}

func TestRegisterFSErrors(t *testing.T) {
	for name, data := range map[string]string{
		"bad yaml":   "locale: [ru",
		"bad locale": "locale: \"!!\"\nmessages: {a: b}\n",
	} {
		fsys := fstest.MapFS{"catalog/x.yaml": {Data: []byte(data)}}
		if _, err := registerFS(fsys); err == nil {
			t.Errorf("%s: expected an error", name)
		}
	}
}
