package backend

import "strings"

// chatRule matches when, for every keyword group, at least one keyword is
// a substring of the lower-cased message. Rules are tried in order and
// the first match wins, so more specific rules must come first.
type chatRule struct {
	groups [][]string
	reply  string
}

var chatRules = []chatRule{
	{
		groups: [][]string{{"ks", "kolmogorov"}},
		reply:  "KS (Kolmogorov-Smirnov) statistic measures the maximum difference between cumulative distributions of good and bad customers. Values above 0.4 indicate good discrimination. In our demo data, most models show KS between 0.38-0.62.",
	},
	{
		groups: [][]string{{"psi"}},
		reply:  "PSI (Population Stability Index) measures distribution drift. PSI < 0.1 is stable, 0.1-0.25 needs monitoring, >0.25 requires action. Demo models show PSI ranging from 0.018 to 0.052, indicating stable populations.",
	},
	{
		groups: [][]string{{"auc", "roc"}},
		reply:  "AUC (Area Under ROC Curve) ranges from 0.5 (random) to 1.0 (perfect). Values above 0.7 are acceptable, above 0.8 are good. Our demo fraud model achieves 0.91 AUC, showing excellent performance.",
	},
	{
		groups: [][]string{{"model"}, {"perform"}},
		reply:  "Based on demo data: ACQ-RET-002 (ML) shows the best overall performance with KS=0.523 and AUC=0.876. FRD-TXN-001 (Fraud) excels with KS=0.623 and 89% fraud detection rate. All models maintain stable PSI values.",
	},
	{
		groups: [][]string{{"trend"}},
		reply:  "Demo trend analysis shows stable KS performance across vintages for most models. PSI has slightly increased for ACQ-ML-003, suggesting potential distribution drift that requires monitoring.",
	},
	{
		groups: [][]string{{"segment"}},
		reply:  "Segment analysis reveals that thick_file segments consistently outperform thin_file segments. For ACQ-RET-001, thick_file shows KS=0.492 vs thin_file KS=0.388, highlighting the importance of segment-level monitoring.",
	},
	{
		groups: [][]string{{"recommendation", "recommend"}},
		reply:  "Key recommendations from demo data:\n1. Monitor ACQ-ML-003 closely (PSI=0.052, approaching threshold)\n2. Investigate thick_file vs thin_file performance gaps\n3. Leverage fraud model success (FRD-TXN-001) as best practice\n4. Maintain current strategies for stable models",
	},
	{
		groups: [][]string{{"hello", "hi", "help"}},
		reply:  "Hello! I am your Model Monitoring assistant. I can help you understand:\n- Metrics: Ask about KS, PSI, AUC, Gini\n- Models: Compare model performance\n- Trends: Analyze trends over time\n- Segments: Understand segment-level insights\n\nWhat would you like to know?",
	},
}

func (r chatRule) matches(msg string) bool {
	for _, group := range r.groups {
		found := false
		for _, kw := range group {
			if strings.Contains(msg, kw) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// chatReply answers a free-text question from the canned rule table.
func chatReply(message string) string {
	msg := strings.ToLower(message)
	for _, r := range chatRules {
		if r.matches(msg) {
			return r.reply
		}
	}
	return `I understand you are asking about "` + message + `". In demo mode, I can discuss KS, PSI, AUC metrics, model performance, trends, and segment analysis. Try asking "Which model performs best?" or "What is PSI?"`
}
