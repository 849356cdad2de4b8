package backend

import "modelmon/internal/monitor"

// Demo fixtures served by MockSource. Shapes are identical to the live
// backend's responses so the rest of the dashboard cannot tell the
// difference. Values are fixed so demo sessions are reproducible.

var fixtureFilterOptions = monitor.FilterOptions{
	Portfolios: []string{"Acquisition", "ECM", "Collections"},
	ModelTypes: []string{"Scorecard", "ML", "Fraud", "Collections"},
	Vintages:   []string{"2024-Q1", "2024-Q2", "2024-Q3", "2024-Q4", "2025-Q1"},
	Segments: []monitor.SegmentOption{
		{Value: "thin_file", Label: "Thin file"},
		{Value: "thick_file", Label: "Thick file"},
	},
}

var fixtureModels = []monitor.ModelInfo{
	{ModelID: "ACQ-RET-001", Portfolio: "Acquisition", ModelType: "Scorecard"},
	{ModelID: "ACQ-RET-002", Portfolio: "Acquisition", ModelType: "ML"},
	{ModelID: "ECM-LIMIT-001", Portfolio: "ECM", ModelType: "Scorecard"},
	{ModelID: "FRD-TXN-001", Portfolio: "Acquisition", ModelType: "Fraud"},
	{ModelID: "COL-RISK-001", Portfolio: "Collections", ModelType: "Collections"},
	{ModelID: "ACQ-ML-003", Portfolio: "Acquisition", ModelType: "ML"},
}

var fixtureSummary = []monitor.MetricRow{
	{
		ModelID: "ACQ-RET-001", Portfolio: "Acquisition", ModelType: "Scorecard", Vintage: "2025-Q1",
		Metrics: map[string]float64{
			"KS": 0.4523, "PSI": 0.0234, "AUC": 0.8245, "Gini": 0.6490,
			"bad_rate": 0.0456, "CA_at_10": 0.3421,
		},
	},
	{
		ModelID: "ACQ-RET-001", Portfolio: "Acquisition", ModelType: "Scorecard", Vintage: "2024-Q4",
		Metrics: map[string]float64{
			"KS": 0.4489, "PSI": 0.0198, "AUC": 0.8198, "Gini": 0.6396,
			"bad_rate": 0.0442, "CA_at_10": 0.3387,
		},
	},
	{
		ModelID: "ACQ-RET-002", Portfolio: "Acquisition", ModelType: "ML", Vintage: "2025-Q1",
		Metrics: map[string]float64{
			"KS": 0.5234, "PSI": 0.0456, "AUC": 0.8756, "Gini": 0.7512,
			"bad_rate": 0.0423, "accuracy": 0.9123, "precision": 0.8456, "recall": 0.7890,
		},
	},
	{
		ModelID: "ECM-LIMIT-001", Portfolio: "ECM", ModelType: "Scorecard", Vintage: "2025-Q1",
		Metrics: map[string]float64{
			"KS": 0.3876, "PSI": 0.0312, "AUC": 0.7654, "Gini": 0.5308, "bad_rate": 0.0512,
		},
	},
	{
		ModelID: "FRD-TXN-001", Portfolio: "Acquisition", ModelType: "Fraud", Vintage: "2025-Q1",
		Metrics: map[string]float64{
			"KS": 0.6234, "PSI": 0.0189, "AUC": 0.9123, "Gini": 0.8246,
			"fraud_detection_rate": 0.8945, "false_positive_rate": 0.0234,
		},
	},
	{
		ModelID: "COL-RISK-001", Portfolio: "Collections", ModelType: "Collections", Vintage: "2025-Q1",
		Metrics: map[string]float64{
			"KS": 0.4123, "PSI": 0.0267, "AUC": 0.7987, "Gini": 0.5974,
			"recovery_rate": 0.6234, "contact_rate": 0.7456,
		},
	},
	{
		ModelID: "ACQ-ML-003", Portfolio: "Acquisition", ModelType: "ML", Vintage: "2025-Q1",
		Metrics: map[string]float64{
			"KS": 0.4987, "PSI": 0.0523, "AUC": 0.8567, "Gini": 0.7134, "bad_rate": 0.0467,
		},
	},
}

var fixtureDetail = map[string]monitor.DetailRecord{
	"ACQ-RET-001": {
		MetricRow: monitor.MetricRow{
			ModelID: "ACQ-RET-001", Portfolio: "Acquisition", ModelType: "Scorecard", Vintage: "2025-Q1",
			Metrics: map[string]float64{
				"KS": 0.4523, "PSI": 0.0234, "AUC": 0.8245, "Gini": 0.6490,
				"bad_rate": 0.0456, "CA_at_10": 0.3421, "approval_rate": 0.7234, "volume": 15234,
			},
		},
		Deciles: []monitor.Decile{
			{Decile: 1, Count: 1523, BadCount: 198, BadRate: 0.1300},
			{Decile: 2, Count: 1524, BadCount: 152, BadRate: 0.0997},
			{Decile: 3, Count: 1523, BadCount: 121, BadRate: 0.0794},
			{Decile: 4, Count: 1523, BadCount: 95, BadRate: 0.0623},
			{Decile: 5, Count: 1524, BadCount: 76, BadRate: 0.0498},
			{Decile: 6, Count: 1523, BadCount: 61, BadRate: 0.0400},
			{Decile: 7, Count: 1524, BadCount: 46, BadRate: 0.0301},
			{Decile: 8, Count: 1523, BadCount: 31, BadRate: 0.0203},
			{Decile: 9, Count: 1524, BadCount: 18, BadRate: 0.0118},
			{Decile: 10, Count: 1523, BadCount: 8, BadRate: 0.0052},
		},
		DecileCommentary: "Model shows strong rank ordering with top decile capturing 13% bad rate vs 0.5% in bottom decile. PSI within acceptable range.",
	},
	"ACQ-RET-002": {
		MetricRow: monitor.MetricRow{
			ModelID: "ACQ-RET-002", Portfolio: "Acquisition", ModelType: "ML", Vintage: "2025-Q1",
			Metrics: map[string]float64{
				"KS": 0.5234, "PSI": 0.0456, "AUC": 0.8756, "Gini": 0.7512,
				"bad_rate": 0.0423, "accuracy": 0.9123, "precision": 0.8456, "recall": 0.7890,
			},
		},
		Deciles: []monitor.Decile{
			{Decile: 1, Count: 2145, BadCount: 289, BadRate: 0.1347},
			{Decile: 2, Count: 2146, BadCount: 193, BadRate: 0.0899},
			{Decile: 3, Count: 2145, BadCount: 143, BadRate: 0.0666},
			{Decile: 4, Count: 2145, BadCount: 107, BadRate: 0.0498},
			{Decile: 5, Count: 2146, BadCount: 79, BadRate: 0.0368},
			{Decile: 6, Count: 2145, BadCount: 58, BadRate: 0.0270},
			{Decile: 7, Count: 2146, BadCount: 41, BadRate: 0.0191},
			{Decile: 8, Count: 2145, BadCount: 26, BadRate: 0.0121},
			{Decile: 9, Count: 2146, BadCount: 15, BadRate: 0.0069},
			{Decile: 10, Count: 2145, BadCount: 7, BadRate: 0.0032},
		},
		Explainability: &monitor.Explainability{
			FeatureImportance: []monitor.FeatureImportance{
				{Feature: "credit_score", Importance: 0.2845},
				{Feature: "debt_to_income", Importance: 0.1923},
				{Feature: "payment_history", Importance: 0.1534},
				{Feature: "account_age", Importance: 0.1287},
				{Feature: "utilization_rate", Importance: 0.0987},
				{Feature: "recent_inquiries", Importance: 0.0823},
				{Feature: "number_of_accounts", Importance: 0.0601},
			},
			ImportanceDrift: 0.0234,
		},
		DecileCommentary: "ML model demonstrates excellent discrimination. Feature importance stable with credit_score as primary driver.",
	},
	"ECM-LIMIT-001": {
		MetricRow: monitor.MetricRow{
			ModelID: "ECM-LIMIT-001", Portfolio: "ECM", ModelType: "Scorecard", Vintage: "2025-Q1",
			Metrics: map[string]float64{
				"KS": 0.3876, "PSI": 0.0312, "AUC": 0.7654, "Gini": 0.5308,
				"bad_rate": 0.0512, "approval_rate": 0.8234,
			},
		},
		Deciles: []monitor.Decile{
			{Decile: 1, Count: 892, BadCount: 98, BadRate: 0.1098},
			{Decile: 2, Count: 893, BadCount: 76, BadRate: 0.0851},
			{Decile: 3, Count: 892, BadCount: 62, BadRate: 0.0695},
			{Decile: 4, Count: 892, BadCount: 51, BadRate: 0.0571},
			{Decile: 5, Count: 893, BadCount: 43, BadRate: 0.0481},
			{Decile: 6, Count: 892, BadCount: 36, BadRate: 0.0403},
			{Decile: 7, Count: 893, BadCount: 29, BadRate: 0.0324},
			{Decile: 8, Count: 892, BadCount: 22, BadRate: 0.0246},
			{Decile: 9, Count: 893, BadCount: 16, BadRate: 0.0179},
			{Decile: 10, Count: 892, BadCount: 11, BadRate: 0.0123},
		},
		DecileCommentary: "ECM model showing moderate discrimination. PSI slightly elevated but within monitoring threshold.",
	},
	"FRD-TXN-001": {
		MetricRow: monitor.MetricRow{
			ModelID: "FRD-TXN-001", Portfolio: "Acquisition", ModelType: "Fraud", Vintage: "2025-Q1",
			Metrics: map[string]float64{
				"KS": 0.6234, "PSI": 0.0189, "AUC": 0.9123, "Gini": 0.8246,
				"fraud_detection_rate": 0.8945, "false_positive_rate": 0.0234,
				"precision": 0.9234, "recall": 0.8945,
			},
		},
		Deciles: []monitor.Decile{
			{Decile: 1, Count: 3421, BadCount: 687, BadRate: 0.2008},
			{Decile: 2, Count: 3422, BadCount: 445, BadRate: 0.1300},
			{Decile: 3, Count: 3421, BadCount: 274, BadRate: 0.0800},
			{Decile: 4, Count: 3421, BadCount: 171, BadRate: 0.0499},
			{Decile: 5, Count: 3422, BadCount: 103, BadRate: 0.0301},
			{Decile: 6, Count: 3421, BadCount: 62, BadRate: 0.0181},
			{Decile: 7, Count: 3422, BadCount: 34, BadRate: 0.0099},
			{Decile: 8, Count: 3421, BadCount: 17, BadRate: 0.0049},
			{Decile: 9, Count: 3422, BadCount: 7, BadRate: 0.0020},
			{Decile: 10, Count: 3421, BadCount: 3, BadRate: 0.0008},
		},
		DecileCommentary: "Fraud model performing exceptionally well. High detection rate with low false positives. Stable PSI indicates consistent scoring.",
	},
	"COL-RISK-001": {
		MetricRow: monitor.MetricRow{
			ModelID: "COL-RISK-001", Portfolio: "Collections", ModelType: "Collections", Vintage: "2025-Q1",
			Metrics: map[string]float64{
				"KS": 0.4123, "PSI": 0.0267, "AUC": 0.7987, "Gini": 0.5974,
				"recovery_rate": 0.6234, "contact_rate": 0.7456, "promise_to_pay_rate": 0.4523,
			},
		},
		Deciles: []monitor.Decile{
			{Decile: 1, Count: 1234, BadCount: 179, BadRate: 0.1450},
			{Decile: 2, Count: 1235, BadCount: 136, BadRate: 0.1101},
			{Decile: 3, Count: 1234, BadCount: 111, BadRate: 0.0899},
			{Decile: 4, Count: 1234, BadCount: 93, BadRate: 0.0753},
			{Decile: 5, Count: 1235, BadCount: 77, BadRate: 0.0623},
			{Decile: 6, Count: 1234, BadCount: 62, BadRate: 0.0502},
			{Decile: 7, Count: 1235, BadCount: 49, BadRate: 0.0396},
			{Decile: 8, Count: 1234, BadCount: 37, BadRate: 0.0299},
			{Decile: 9, Count: 1235, BadCount: 25, BadRate: 0.0202},
			{Decile: 10, Count: 1234, BadCount: 15, BadRate: 0.0121},
		},
		DecileCommentary: "Collections model showing good segmentation capability. Recovery rates higher in lower risk deciles as expected.",
	},
	"ACQ-ML-003": {
		MetricRow: monitor.MetricRow{
			ModelID: "ACQ-ML-003", Portfolio: "Acquisition", ModelType: "ML", Vintage: "2025-Q1",
			Metrics: map[string]float64{
				"KS": 0.4987, "PSI": 0.0523, "AUC": 0.8567, "Gini": 0.7134,
				"bad_rate": 0.0467, "accuracy": 0.8934, "precision": 0.8123, "recall": 0.7654,
			},
		},
		Deciles: []monitor.Decile{
			{Decile: 1, Count: 1876, BadCount: 244, BadRate: 0.1300},
			{Decile: 2, Count: 1877, BadCount: 169, BadRate: 0.0900},
			{Decile: 3, Count: 1876, BadCount: 131, BadRate: 0.0698},
			{Decile: 4, Count: 1876, BadCount: 100, BadRate: 0.0533},
			{Decile: 5, Count: 1877, BadCount: 75, BadRate: 0.0399},
			{Decile: 6, Count: 1876, BadCount: 56, BadRate: 0.0298},
			{Decile: 7, Count: 1877, BadCount: 39, BadRate: 0.0207},
			{Decile: 8, Count: 1876, BadCount: 26, BadRate: 0.0138},
			{Decile: 9, Count: 1877, BadCount: 15, BadRate: 0.0079},
			{Decile: 10, Count: 1876, BadCount: 7, BadRate: 0.0037},
		},
		Explainability: &monitor.Explainability{
			FeatureImportance: []monitor.FeatureImportance{
				{Feature: "bureau_score", Importance: 0.3123},
				{Feature: "income_stability", Importance: 0.1876},
				{Feature: "existing_obligations", Importance: 0.1543},
				{Feature: "employment_tenure", Importance: 0.1234},
				{Feature: "residential_stability", Importance: 0.0987},
				{Feature: "credit_mix", Importance: 0.0765},
				{Feature: "recent_credit_behavior", Importance: 0.0472},
			},
			ImportanceDrift: 0.0412,
		},
		DecileCommentary: "ML model with elevated PSI - requires monitoring. Good discrimination maintained but distribution shift detected.",
	},
}

type trendPoint struct {
	vintage string
	ks      float64
	psi     float64
	volume  int
	badRate float64
}

var fixtureTrends = map[string][]trendPoint{
	"ACQ-RET-001": {
		{"2024-Q1", 0.4456, 0.0187, 14523, 0.0478},
		{"2024-Q2", 0.4489, 0.0212, 15234, 0.0465},
		{"2024-Q3", 0.4512, 0.0198, 14987, 0.0451},
		{"2024-Q4", 0.4489, 0.0198, 15456, 0.0442},
		{"2025-Q1", 0.4523, 0.0234, 15234, 0.0456},
	},
	"ACQ-RET-002": {
		{"2024-Q1", 0.5123, 0.0389, 20123, 0.0445},
		{"2024-Q2", 0.5189, 0.0412, 21456, 0.0432},
		{"2024-Q3", 0.5212, 0.0434, 21234, 0.0428},
		{"2024-Q4", 0.5198, 0.0445, 21897, 0.0419},
		{"2025-Q1", 0.5234, 0.0456, 21456, 0.0423},
	},
	"ECM-LIMIT-001": {
		{"2024-Q1", 0.3923, 0.0287, 8734, 0.0534},
		{"2024-Q2", 0.3898, 0.0298, 8923, 0.0523},
		{"2024-Q3", 0.3867, 0.0305, 8812, 0.0518},
		{"2024-Q4", 0.3889, 0.0312, 9012, 0.0515},
		{"2025-Q1", 0.3876, 0.0312, 8923, 0.0512},
	},
	"FRD-TXN-001": {
		{"2024-Q1", 0.6189, 0.0145, 32456, 0.0523},
		{"2024-Q2", 0.6212, 0.0167, 33123, 0.0512},
		{"2024-Q3", 0.6198, 0.0178, 33897, 0.0506},
		{"2024-Q4", 0.6223, 0.0183, 34123, 0.0501},
		{"2025-Q1", 0.6234, 0.0189, 34210, 0.0498},
	},
	"COL-RISK-001": {
		{"2024-Q1", 0.4089, 0.0234, 11234, 0.0789},
		{"2024-Q2", 0.4112, 0.0245, 11567, 0.0767},
		{"2024-Q3", 0.4098, 0.0256, 11789, 0.0756},
		{"2024-Q4", 0.4134, 0.0261, 12012, 0.0745},
		{"2025-Q1", 0.4123, 0.0267, 12340, 0.0738},
	},
	"ACQ-ML-003": {
		{"2024-Q1", 0.4923, 0.0412, 18234, 0.0489},
		{"2024-Q2", 0.4945, 0.0445, 18567, 0.0478},
		{"2024-Q3", 0.4967, 0.0478, 18789, 0.0472},
		{"2024-Q4", 0.4978, 0.0501, 18923, 0.0469},
		{"2025-Q1", 0.4987, 0.0523, 18760, 0.0467},
	},
}

var fixtureVariableStability = map[string][]monitor.VariableRow{
	"ACQ-RET-001": {
		{Variable: "credit_score", PSI: 0.0234, MeanDev: 678.4, MeanProd: 682.1, Drift: 0.0054},
		{Variable: "debt_to_income", PSI: 0.0189, MeanDev: 0.342, MeanProd: 0.338, Drift: -0.0117},
		{Variable: "payment_history", PSI: 0.0312, MeanDev: 0.876, MeanProd: 0.889, Drift: 0.0148},
		{Variable: "account_age", PSI: 0.0156, MeanDev: 4.5, MeanProd: 4.6, Drift: 0.0222},
		{Variable: "utilization_rate", PSI: 0.0278, MeanDev: 0.456, MeanProd: 0.442, Drift: -0.0307},
	},
	"ACQ-RET-002": {
		{Variable: "credit_score", PSI: 0.0456, MeanDev: 685.3, MeanProd: 691.2, Drift: 0.0086},
		{Variable: "debt_to_income", PSI: 0.0389, MeanDev: 0.328, MeanProd: 0.319, Drift: -0.0274},
		{Variable: "payment_history", PSI: 0.0412, MeanDev: 0.891, MeanProd: 0.903, Drift: 0.0135},
		{Variable: "account_age", PSI: 0.0367, MeanDev: 4.7, MeanProd: 4.9, Drift: 0.0426},
		{Variable: "utilization_rate", PSI: 0.0434, MeanDev: 0.442, MeanProd: 0.429, Drift: -0.0294},
		{Variable: "recent_inquiries", PSI: 0.0523, MeanDev: 2.3, MeanProd: 2.6, Drift: 0.1304},
	},
}

var fixtureSegments = map[string]monitor.SegmentReport{
	"ACQ-RET-001": {
		ModelID:   "ACQ-RET-001",
		ModelType: "Scorecard",
		Segments: []monitor.SegmentMetrics{
			{
				Segment: "thin_file", Label: "Thin file", Volume: 4523,
				Metrics: map[string]float64{"KS": 0.3876, "PSI": 0.0345, "AUC": 0.7654, "bad_rate": 0.0687},
			},
			{
				Segment: "thick_file", Label: "Thick file", Volume: 10711,
				Metrics: map[string]float64{"KS": 0.4923, "PSI": 0.0189, "AUC": 0.8567, "bad_rate": 0.0345},
			},
		},
	},
	"ACQ-RET-002": {
		ModelID:   "ACQ-RET-002",
		ModelType: "ML",
		Segments: []monitor.SegmentMetrics{
			{
				Segment: "thin_file", Label: "Thin file", Volume: 6234,
				Metrics: map[string]float64{"KS": 0.4567, "PSI": 0.0523, "AUC": 0.8234, "bad_rate": 0.0634},
			},
			{
				Segment: "thick_file", Label: "Thick file", Volume: 15222,
				Metrics: map[string]float64{"KS": 0.5623, "PSI": 0.0398, "AUC": 0.9012, "bad_rate": 0.0312},
			},
		},
	},
}

// fixtureComputedMetrics is the fixed result of a mock compute-metrics run.
var fixtureComputedMetrics = map[string]float64{
	"KS":   0.4523,
	"PSI":  0.0234,
	"AUC":  0.8245,
	"Gini": 0.6490,
}
