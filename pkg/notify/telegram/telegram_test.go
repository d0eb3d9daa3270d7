package telegram

import "testing"

func TestText(t *testing.T) {
	tests := []struct {
		user, title, body string
		want              string
	}{
		{"u1", "Welcome", "Thanks for going premium", "*Welcome*\nThanks for going premium\n_u1_"},
		{"", "", "just a body", "just a body"},
		{"user_1", "*bold*", "", "*\\*bold\\**\n_user\\_1_"},
	}
	for _, tt := range tests {
		if got := Text(tt.user, tt.title, tt.body); got != tt.want {
			t.Errorf("Text(%q, %q, %q) = %q; want %q", tt.user, tt.title, tt.body, got, tt.want)
		}
	}
}
