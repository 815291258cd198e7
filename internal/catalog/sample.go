package catalog

import "github.com/pumpstore-next/internal/models"

// SampleProducts 离线示例目录。上游不可用时目录服务降级到这份数据，
// 保证浏览体验不中断（见 Service.Browse）。每次调用返回独立副本。
func SampleProducts() []models.Product {
	samples := []models.Product{
		{
			ID:          "sample-qb60",
			Name:        "QB60 Peripheral Pump",
			Description: "Compact peripheral pump for domestic water boosting, 0.5 HP.",
			Price:       models.NewMoneyFromFloat(49.90),
			Category:    models.CategoryRef{Name: "Peripheral"},
			Images:      []string{"/images/sample/qb60.jpg"},
			Stock:       25,
		},
		{
			ID:          "sample-jet100",
			Name:        "JET100 Self-priming Pump",
			Description: "Self-priming jet pump with stainless steel impeller, 1 HP.",
			Price:       models.NewMoneyFromFloat(129.00),
			Category:    models.CategoryRef{Name: "Self-priming"},
			Images:      []string{"/images/sample/jet100.jpg"},
			Stock:       18,
		},
		{
			ID:          "sample-cpm158",
			Name:        "CPM158 Centrifugal Pump",
			Description: "Single-stage centrifugal pump for irrigation and transfer duty.",
			Price:       models.NewMoneyFromFloat(96.50),
			Category:    models.CategoryRef{Name: "Centrifugal pumps"},
			Images:      []string{"/images/sample/cpm158.jpg"},
			Stock:       12,
		},
		{
			ID:          "sample-swim75",
			Name:        "SWIM75 Pool Circulation Pump",
			Description: "Quiet circulation pump with strainer basket for swimming pools.",
			Price:       models.NewMoneyFromFloat(219.00),
			Category:    models.CategoryRef{Name: "Swimming pool"},
			Images:      []string{"/images/sample/swim75.jpg"},
			Stock:       7,
		},
		{
			ID:          "sample-dc24",
			Name:        "DC24 Booster Pump",
			Description: "24V DC dot booster pump for solar-fed household lines.",
			Price:       models.NewMoneyFromFloat(75.00),
			Category:    models.CategoryRef{Name: "DC dot booster pump"},
			Images:      []string{"/images/sample/dc24.jpg"},
			Stock:       30,
		},
		{
			ID:          "sample-inv1100",
			Name:        "INV1100 Inverter Automatic Pump",
			Description: "Constant-pressure inverter pump with automatic start/stop.",
			Price:       models.NewMoneyFromFloat(342.00),
			Category:    models.CategoryRef{Name: "Inverter automatic pump"},
			Images:      []string{"/images/sample/inv1100.jpg"},
			Stock:       5,
		},
		{
			ID:          "sample-sub550",
			Name:        "SUB550 Submersible Sewage Pump",
			Description: "Cast iron submersible pump with cutter for sewage discharge.",
			Price:       models.NewMoneyFromFloat(185.50),
			Category:    models.CategoryRef{Name: "Submersible sewage pump"},
			Images:      []string{"/images/sample/sub550.jpg"},
			Stock:       9,
		},
		{
			ID:          "sample-sol300",
			Name:        "SOL300 Solar Pump",
			Description: "Brushless solar surface pump with MPPT controller, 300W.",
			Price:       models.NewMoneyFromFloat(268.00),
			Category:    models.CategoryRef{Name: "Solar pump"},
			Images:      []string{"/images/sample/sol300.jpg"},
			Stock:       14,
		},
	}
	Normalize(samples)
	return samples
}
