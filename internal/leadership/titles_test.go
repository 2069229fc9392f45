package leadership

import "testing"

func TestIsLeadershipTitle(t *testing.T) {
	tests := []struct {
		title string
		want  bool
	}{
		{"CEO", true},
		{"CEO at Acme Corp", true},
		{"Chief Executive Officer", true},
		{"Chief Technology Officer", true},
		{"Co-Founder", true},
		{"Cofounder", true},
		{"Founder & CEO", true},
		{"President", true},
		{"Managing Director", true},
		{"General Manager", true},
		{"VP of Engineering", true},
		{"Vice President of Sales", true},
		{"Software Engineer", false},
		{"Account Executive", false},
		{"Customer Success Manager", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := IsLeadershipTitle(tt.title); got != tt.want {
			t.Errorf("IsLeadershipTitle(%q) = %v, want %v", tt.title, got, tt.want)
		}
	}
}

func TestExtractLeadershipTitle(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"CEO at Acme Corp", "CEO"},
		{"Senior VP of Marketing", "VP of Marketing"},
		{"Chief Product Officer", "Chief Product Officer"},
		{"Software Engineer", ""},
	}

	for _, tt := range tests {
		if got := ExtractLeadershipTitle(tt.title); got != tt.want {
			t.Errorf("ExtractLeadershipTitle(%q) = %q, want %q", tt.title, got, tt.want)
		}
	}
}

func TestNormalizeTitle(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"Chief Executive Officer", "CEO"},
		{"chief technology officer", "CTO"},
		{"Co Founder", "Co-Founder"},
		{"cofounder", "Co-Founder"},
		{"CEO at Acme Corp", "CEO"},
		{"Head of Design", "Head of Design"}, // unrecognized passes through
	}

	for _, tt := range tests {
		if got := NormalizeTitle(tt.title); got != tt.want {
			t.Errorf("NormalizeTitle(%q) = %q, want %q", tt.title, got, tt.want)
		}
	}
}

func TestRankTitle(t *testing.T) {
	if ceo, cto := RankTitle("CEO"), RankTitle("CTO"); ceo >= cto {
		t.Errorf("CEO (%d) must outrank CTO (%d)", ceo, cto)
	}
	if got := RankTitle("VP of Engineering"); got != rankVP {
		t.Errorf("VP rank = %d, want %d", got, rankVP)
	}
	if got := RankTitle("Chief Happiness Officer"); got != rankChief {
		t.Errorf("unlisted chief rank = %d, want %d", got, rankChief)
	}
	if got := RankTitle("Janitor"); got != rankUnranked {
		t.Errorf("unranked title = %d, want %d", got, rankUnranked)
	}
}
