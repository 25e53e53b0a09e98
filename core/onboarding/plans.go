package onboarding

// Subscription tiers
const (
	TierFree       Tier = "free"
	TierPro        Tier = "pro"
	TierEnterprise Tier = "enterprise"
)

type (
	Tier string

	Plan struct {
		Tier         Tier          `json:"id"`
		Name         Localized     `json:"name"`
		MonthlyPrice int           `json:"monthly_price"`
		YearlyPrice  int           `json:"yearly_price"`
		Description  Localized     `json:"description"`
		Features     LocalizedList `json:"features"`
		Popular      bool          `json:"popular"`
	}
)

var Plans = []Plan{
	{
		Tier:        TierFree,
		Name:        Localized{En: "Free", ID: "Percuma"},
		Description: Localized{En: "Perfect for getting started", ID: "Sempurna untuk bermula"},
		Features: LocalizedList{
			En: []string{"Access to basic courses", "Community support", "Basic progress tracking", "Mobile app access"},
			ID: []string{"Akses kepada kursus asas", "Sokongan komuniti", "Penjejakan kemajuan asas", "Akses aplikasi mudah alih"},
		},
	},
	{
		Tier:         TierPro,
		Name:         Localized{En: "Pro", ID: "Pro"},
		MonthlyPrice: 19,
		YearlyPrice:  190,
		Description:  Localized{En: "Most popular choice", ID: "Pilihan paling popular"},
		Features: LocalizedList{
			En: []string{"All Free features", "Premium courses & projects", "AI-powered code review", "Priority support", "Certificates of completion", "Advanced analytics"},
			ID: []string{"Semua ciri Percuma", "Kursus & projek premium", "Ulasan kod berkuasa AI", "Sokongan keutamaan", "Sijil penyiapan", "Analitik lanjutan"},
		},
		Popular: true,
	},
	{
		Tier:         TierEnterprise,
		Name:         Localized{En: "Enterprise", ID: "Perusahaan"},
		MonthlyPrice: 49,
		YearlyPrice:  490,
		Description:  Localized{En: "For teams and organizations", ID: "Untuk pasukan dan organisasi"},
		Features: LocalizedList{
			En: []string{"All Pro features", "Team management", "Custom learning paths", "Advanced reporting", "SSO integration", "Dedicated account manager"},
			ID: []string{"Semua ciri Pro", "Pengurusan pasukan", "Laluan pembelajaran tersuai", "Pelaporan lanjutan", "Integrasi SSO", "Pengurus akaun khusus"},
		},
	},
}

// PlanByTier returns the plan of the given tier.
func PlanByTier(tier Tier) (Plan, bool) {
	for _, p := range Plans {
		if p.Tier == tier {
			return p, true
		}
	}
	return Plan{}, false
}
