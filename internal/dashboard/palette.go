package dashboard

// Palette is an ordered set of widget colors. Color assignment is the
// category's index modulo the palette length, so identical category
// order always yields identical colors.
type Palette []string

func (p Palette) At(i int) string {
	if len(p) == 0 {
		return ""
	}
	return p[i%len(p)]
}

var (
	IncomePalette = Palette{
		"#3498db",
		"#e74c3c",
		"#9b59b6",
		"#f1c40f",
		"#2ecc71",
	}

	ExpensePalette = Palette{
		"#FF6B6B",
		"#4ECDC4",
		"#FFA07A",
		"#45B7D1",
		"#FFB6B9",
		"#96CEB4",
		"#6C88C4",
		"#88D8B0",
		"#427aa1",
		"#aa968a",
		"#ADB2D4",
		"#FFDCCC",
		"#D4A5A5",
		"#9B59B6",
		"#F4A261",
	}

	SavingsPalette = Palette{"#E75480", "#01BAEF"}

	ProportionPalette = Palette{
		"#FF9AA2",
		"#66C7F4",
		"#FFB347",
		"#A8E6CF",
		"#FFDAC1",
		"#C3B1E1",
	}
)

const (
	ScatterIncomeColor  = "#ff6384"
	ScatterExpenseColor = "#7B68EE"

	RadarAllocatedColor = "rgba(52, 152, 219, 1)"
	RadarSpentColor     = "rgba(255, 99, 132, 1)"

	OverBudgetColor  = "#ff6384"
	UnderBudgetColor = "#3498db"
)
