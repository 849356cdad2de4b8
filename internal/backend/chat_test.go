package backend

import (
	"strings"
	"testing"
)

func TestChatReplyRules(t *testing.T) {
	cases := []struct {
		name    string
		message string
		want    string
	}{
		{"ks keyword", "What is KS?", "Kolmogorov-Smirnov"},
		{"kolmogorov spelled out", "explain the kolmogorov statistic", "Kolmogorov-Smirnov"},
		{"psi keyword", "tell me about PSI drift", "Population Stability Index"},
		{"auc keyword", "is the AUC good?", "Area Under ROC Curve"},
		{"model performance", "which model performs best?", "best overall performance"},
		{"trend keyword", "show me the trend", "trend analysis"},
		{"segment keyword", "segment breakdown please", "thick_file segments"},
		{"recommendation", "any recommendations?", "Key recommendations"},
		{"greeting", "hello there", "Model Monitoring assistant"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := chatReply(tc.message)
			if !strings.Contains(got, tc.want) {
				t.Errorf("chatReply(%q) = %q, expected to contain %q", tc.message, got, tc.want)
			}
		})
	}
}

func TestChatReplyOrderMatters(t *testing.T) {
	// "ks" appears before the model+perform rule, so a question mentioning
	// both resolves to the KS explanation.
	got := chatReply("how does the model perform on ks?")
	if !strings.Contains(got, "Kolmogorov-Smirnov") {
		t.Errorf("First matching rule should win: %q", got)
	}
	// "model" alone, without "perform", falls through to the default.
	got = chatReply("tell me about the acquisition setup")
	if !strings.Contains(got, "In demo mode") {
		t.Errorf("Unmatched question should echo the default: %q", got)
	}
}

func TestChatReplyDefaultEchoesInput(t *testing.T) {
	got := chatReply("quarterly governance pack")
	if !strings.Contains(got, `"quarterly governance pack"`) {
		t.Errorf("Default reply should quote the question: %q", got)
	}
}
