package main

import "testing"

func TestNormalizeLocale(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", LocaleEN},
		{"en", LocaleEN},
		{"en-US,en;q=0.9", LocaleEN},
		{"pt-BR", LocalePTBR},
		{"pt", LocalePTBR},
		{" PT-br ", LocalePTBR},
		{"pt-PT,pt;q=0.9", LocalePTBR},
		{"de", LocaleEN},
	}
	for _, tt := range tests {
		if got := normalizeLocale(tt.in); got != tt.want {
			t.Errorf("normalizeLocale(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestTextFallsBackToEnglish(t *testing.T) {
	tx := Text{EN: "Hello"}
	if got := tx.In(LocalePTBR); got != "Hello" {
		t.Errorf("In(pt-BR) = %q, want English fallback", got)
	}
}

func TestLocalize(t *testing.T) {
	en := siteContent.Localize("en")
	pt := siteContent.Localize("pt-BR")

	if en.Locale != LocaleEN || pt.Locale != LocalePTBR {
		t.Fatalf("locales = %q, %q", en.Locale, pt.Locale)
	}
	if en.Name != pt.Name {
		t.Error("name should not be localized")
	}
	if en.Bio == pt.Bio {
		t.Error("bio not localized")
	}
	if len(en.Projects) != len(siteContent.Projects) {
		t.Errorf("projects = %d, want %d", len(en.Projects), len(siteContent.Projects))
	}
	if len(en.Skills) == 0 {
		t.Error("no skill groups")
	}
	if en.Stats["projects"] != len(siteContent.Projects) {
		t.Errorf("stats = %v", en.Stats)
	}
}

func TestSkillsByCategoryOmitsEmpty(t *testing.T) {
	c := Content{Skills: []Skill{{Name: "Go", Category: "backend"}}}

	groups := c.SkillsByCategory(LocaleEN)
	if len(groups) != 1 || groups[0].Category != "backend" || groups[0].Skills[0] != "Go" {
		t.Errorf("groups = %+v", groups)
	}
}

func TestFeaturedProjects(t *testing.T) {
	c := Content{Projects: []Project{
		{ID: "a", Featured: true},
		{ID: "b"},
		{ID: "c", Featured: true},
	}}

	got := c.FeaturedProjects()
	if len(got) != 2 || got[0].ID != "a" || got[1].ID != "c" {
		t.Errorf("featured = %+v", got)
	}
}
