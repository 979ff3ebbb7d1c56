package catalog

import (
	"strings"
	"testing"
	"testing/fstest"
)

func TestLoadEmbeddedHasExpectedLocales(t *testing.T) {
	bundle, err := LoadEmbedded()
	if err != nil {
		t.Fatalf("load embedded catalogs: %v", err)
	}
	for _, locale := range []string{BaseLocale, "fr-FR"} {
		if !bundle.HasLocale(locale) {
			t.Fatalf("expected locale %s", locale)
		}
	}
	if _, ok := bundle.Message("en-US", "combat.turn.description"); !ok {
		t.Fatal("expected combat.turn.description in en-US")
	}
}

func TestEmbeddedLocalesDefineSameKeys(t *testing.T) {
	bundle := Default()
	base := bundle.locales[BaseLocale]
	for _, locale := range bundle.Locales() {
		messages := bundle.locales[locale]
		if len(messages) != len(base) {
			t.Fatalf("locale %s has %d keys, want %d", locale, len(messages), len(base))
		}
		for key := range base {
			if _, ok := messages[key]; !ok {
				t.Fatalf("locale %s missing key %s", locale, key)
			}
		}
	}
}

func TestPrinterRendersRegisteredMessages(t *testing.T) {
	bundle := Default()

	en := bundle.Printer("en-US").Sprintf("combat.turn.description", "abcd1234", 2, 49)
	if en != "abcd1234 uses skill 2 and deals 49 damage" {
		t.Fatalf("en-US description = %q", en)
	}
	fr := bundle.Printer("fr").Sprintf("combat.turn.description", "abcd1234", 2, 49)
	if fr != "abcd1234 utilise compétence 2 et inflige 49 dégâts" {
		t.Fatalf("fr description = %q", fr)
	}
}

func TestMatchFallsBackToBaseLocale(t *testing.T) {
	bundle := Default()
	for _, locale := range []string{"", "not a tag", "ja-JP"} {
		if got := bundle.Match(locale).String(); got != BaseLocale {
			t.Fatalf("Match(%q) = %s, want %s", locale, got, BaseLocale)
		}
	}
}

func TestMessageFallsBackToBaseLocale(t *testing.T) {
	catalogFS := fstest.MapFS{
		"locales/en-US/combat.yaml": &fstest.MapFile{Data: []byte("locale: en-US\nnamespace: combat\nmessages:\n  combat.a: \"A\"\n  combat.b: \"B\"\n")},
		"locales/fr-FR/combat.yaml": &fstest.MapFile{Data: []byte("locale: fr-FR\nnamespace: combat\nmessages:\n  combat.a: \"a\"\n")},
	}
	bundle, err := LoadFromFS(catalogFS)
	if err != nil {
		t.Fatalf("load catalogs: %v", err)
	}
	if got, _ := bundle.Message("fr-FR", "combat.a"); got != "a" {
		t.Fatalf("fr-FR combat.a = %q, want %q", got, "a")
	}
	if got, ok := bundle.Message("fr-FR", "combat.b"); !ok || got != "B" {
		t.Fatalf("fr-FR combat.b = %q, %v; want base fallback", got, ok)
	}
}

func TestLoadFromFSRejectsInvalidCatalogs(t *testing.T) {
	tests := []struct {
		name string
		fs   fstest.MapFS
		want string
	}{
		{
			name: "missing base locale",
			fs: fstest.MapFS{
				"locales/fr-FR/combat.yaml": &fstest.MapFile{Data: []byte("locale: fr-FR\nnamespace: combat\nmessages:\n  combat.a: \"a\"\n")},
			},
			want: "base locale",
		},
		{
			name: "locale mismatch",
			fs: fstest.MapFS{
				"locales/en-US/combat.yaml": &fstest.MapFile{Data: []byte("locale: fr-FR\nnamespace: combat\nmessages:\n  combat.a: \"a\"\n")},
			},
			want: "must match path locale",
		},
		{
			name: "key outside namespace",
			fs: fstest.MapFS{
				"locales/en-US/combat.yaml": &fstest.MapFile{Data: []byte("locale: en-US\nnamespace: combat\nmessages:\n  player.a: \"a\"\n")},
			},
			want: "must start with namespace",
		},
		{
			name: "malformed yaml",
			fs: fstest.MapFS{
				"locales/en-US/combat.yaml": &fstest.MapFile{Data: []byte("locale: [en-US\n")},
			},
			want: "parse catalog",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFromFS(tt.fs)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("LoadFromFS error = %v, want containing %q", err, tt.want)
			}
		})
	}
}
