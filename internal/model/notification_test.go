package model

import "testing"

func TestNotificationKind(t *testing.T) {
	tests := []struct {
		typ  string
		want Kind
	}{
		{"like", KindLike},
		{"hire", KindHire},
		{"follow", KindGeneric},
		{"", KindGeneric},
		{"LIKE", KindGeneric},
	}

	for _, tt := range tests {
		t.Run(tt.typ, func(t *testing.T) {
			n := Notification{Type: tt.typ}
			if got := n.Kind(); got != tt.want {
				t.Errorf("Kind() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestResolveHire(t *testing.T) {
	tests := []struct {
		name        string
		primary     *HireDetails
		fallback    *HireDetails
		wantTitle   string
		wantMessage string
	}{
		{
			name:        "primary wins",
			primary:     &HireDetails{JobTitle: "Backend Engineer", Message: "Join us"},
			fallback:    &HireDetails{JobTitle: "Intern", Message: "Hi"},
			wantTitle:   "Backend Engineer",
			wantMessage: "Join us",
		},
		{
			name:        "fallback when primary is nil",
			fallback:    &HireDetails{JobTitle: "Intern", Message: "Hi"},
			wantTitle:   "Intern",
			wantMessage: "Hi",
		},
		{
			name:        "defaults when both nil",
			wantTitle:   DefaultJobTitle,
			wantMessage: "",
		},
		{
			name:        "fields resolve independently",
			primary:     &HireDetails{JobTitle: "Designer"},
			fallback:    &HireDetails{JobTitle: "Intern", Message: "Hi"},
			wantTitle:   "Designer",
			wantMessage: "Hi",
		},
		{
			name:        "empty payloads fall through to defaults",
			primary:     &HireDetails{},
			fallback:    &HireDetails{},
			wantTitle:   DefaultJobTitle,
			wantMessage: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			title, message := ResolveHire(tt.primary, tt.fallback)
			if title != tt.wantTitle {
				t.Errorf("title = %q, want %q", title, tt.wantTitle)
			}
			if message != tt.wantMessage {
				t.Errorf("message = %q, want %q", message, tt.wantMessage)
			}
		})
	}
}
