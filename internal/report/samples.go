package report

type Sample struct {
	Title string `json:"title"`
	Note  string `json:"note"`
}

var samples = map[Language][]Sample{
	English: {
		{"Hypertension & Hyperlipidemia", "45-year-old male presents for routine follow-up. BP 152/94 mmHg, hypertension stage 2. On losartan 50mg daily. LDL 172 mg/dL, HDL 42 mg/dL, TG 190 mg/dL. Advised diet modification, exercise, and initiation of atorvastatin 20mg nightly."},
		{"Diabetes & Obesity", "52-year-old female with type 2 diabetes, last HbA1c 8.2%. BMI 32. Blood pressure 138/88 mmHg. Currently on metformin 1000mg BID. Discussed dietary plan, weight reduction, and physical activity goal of 150 min/week. Consider GLP-1 agonist if target not met."},
		{"Asthma Exacerbation", "30-year-old patient presents with wheezing and shortness of breath for 3 days. PE: expiratory wheezes bilaterally. PEF 280 L/min (personal best 400 L/min). Prescribed albuterol inhaler PRN, fluticasone 110 mcg BID. Advised trigger avoidance and follow-up in 1 week."},
		{"Acute Bronchitis & Smoking History", "38-year-old male with 10-year smoking history presents with productive cough and low-grade fever x 5 days. CXR negative for consolidation. Prescribed supportive care: hydration, OTC antitussives, and nicotine cessation counseling."},
		{"Chronic Kidney Disease & Hypertension", "60-year-old female with CKD stage 3 (eGFR 42), HTN on amlodipine 10mg daily. Labs: Cr 1.5 mg/dL, K+ 4.8 mmol/L. Discussed low-sodium diet, BP log monitoring, and nephrology follow-up. Advised avoiding NSAIDs."},
		{"Heart Failure & Arrhythmia", "70-year-old male with HFrEF (EF 35%) presents for routine cardiology visit. NYHA II symptoms. Medications: carvedilol 25mg BID, furosemide 40mg daily. ECG shows occasional PVCs. Encouraged daily weight monitoring and low-salt diet. Discussed signs of fluid overload."},
	},
	Korean: {
		{"고혈압 & 고지혈증", "45세 남성, 고혈압(2기) 및 고지혈증 진단. 아토르바스타틴 20mg 처방 예정."},
		{"당뇨병 & 비만", "52세 여성, 제2형 당뇨병 (HbA1C 8.2%), BMI 32. 메트포르민 복용 중, 생활습관 개선 권장."},
		{"천식 악화", "30세 환자, 호흡곤란 및 쌕쌕거림으로 내원. 흡입용 스테로이드 처방."},
		{"만성신질환 & 고혈압", "60세 여성, CKD 3단계 (eGFR 42). 아몰로디핀 복용 중. 저염식 및 신장내과 추적 관찰 필요."},
		{"심부전 & 부정맥", "70세 남성, 심부전 EF 35%. 이뇨제 및 베타차단제 복용 중. 간헐적 심실 조기수축 관찰."},
	},
}

// Samples returns the example notes offered by the form for a language.
func Samples(lang Language) []Sample {
	out := make([]Sample, len(samples[lang]))
	copy(out, samples[lang])
	return out
}
