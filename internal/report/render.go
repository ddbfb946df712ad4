package report

import (
	"fmt"
	"io"
	"sort"

	"github.com/gridleaf/carboncast/internal/emissions"
	"github.com/gridleaf/carboncast/internal/intensity"
	"github.com/gridleaf/carboncast/internal/loadshift"
	"github.com/gridleaf/carboncast/internal/refdata"
)

// Estimate is the renderable view of a footprint calculation.
type Estimate struct {
	Region         string                 `json:"region"`
	Season         string                 `json:"season"`
	RegionFallback bool                   `json:"region_fallback,omitempty"`
	Result         emissions.Result       `json:"result"`
	Score          *emissions.Score       `json:"score,omitempty"`
	Offset         *emissions.OffsetQuote `json:"offset,omitempty"`
}

// WriteEstimateTable renders a footprint estimate as a plain table.
func WriteEstimateTable(w io.Writer, est Estimate) {
	fmt.Fprintln(w, "Household Footprint Estimate")
	fmt.Fprintln(w, "============================")
	fmt.Fprintln(w)

	fmt.Fprintf(w, "Region: %s (%s basis", est.Region, est.Result.Electricity.Basis)
	if est.Result.Electricity.RenewableAdjust > 0 {
		fmt.Fprintf(w, ", renewable adjust %s", FormatPct(est.Result.Electricity.RenewableAdjust))
	}
	fmt.Fprintln(w, ")")
	fmt.Fprintf(w, "Season: %s\n", est.Season)
	fmt.Fprintf(w, "Electricity factor: %s kg CO2/kWh (base %s, implied %s)\n",
		FormatIntensity(est.Result.Electricity.Effective),
		FormatIntensity(est.Result.Electricity.Base),
		FormatIntensity(est.Result.Electricity.Implied),
	)
	if est.RegionFallback {
		fmt.Fprintf(w, "Note: unknown region requested, using %s\n", est.Region)
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "Total: %s\n", FormatKg(est.Result.Total))
	fmt.Fprintln(w)

	if len(est.Result.PerActivity) > 0 {
		fmt.Fprintln(w, "Per activity:")
		fmt.Fprintln(w, "-------------")
		for _, key := range sortedKeys(est.Result.PerActivity) {
			fmt.Fprintf(w, "  %-24s %s\n", key, FormatKg(est.Result.PerActivity[key]))
		}
		fmt.Fprintln(w)
	}

	if len(est.Result.PerCategory) > 0 {
		fmt.Fprintln(w, "Per category:")
		fmt.Fprintln(w, "-------------")
		for _, cat := range []refdata.Category{refdata.CategoryEnergy, refdata.CategoryTransport, refdata.CategoryMeals} {
			if kg, ok := est.Result.PerCategory[cat]; ok {
				fmt.Fprintf(w, "  %-24s %s\n", string(cat), FormatKg(kg))
			}
		}
		fmt.Fprintln(w)
	}

	if est.Score != nil {
		fmt.Fprintf(w, "Efficiency score: %d/100 (%s)\n", est.Score.Value, est.Score.Rating)
		if est.Score.Note != "" {
			fmt.Fprintf(w, "  %s\n", est.Score.Note)
		}
		fmt.Fprintln(w)
	}

	if est.Offset != nil {
		WriteOffsetTable(w, *est.Offset)
	}
}

// ProfileView is the renderable view of an hourly intensity profile.
type ProfileView struct {
	Profile  intensity.Profile         `json:"profile"`
	Season   string                    `json:"season"`
	LowHours []loadshift.HourIntensity `json:"low_hours,omitempty"`
}

// profileBarWidth is the widest bar drawn next to an hourly value.
const profileBarWidth = 30

// WriteProfileTable renders a 24-hour intensity profile with inline bars.
func WriteProfileTable(w io.Writer, view ProfileView) {
	fmt.Fprintln(w, "Hourly Carbon Intensity")
	fmt.Fprintln(w, "=======================")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Region: %s   Season: %s   Template: %s\n",
		view.Profile.Region, view.Season, view.Profile.Template)
	fmt.Fprintf(w, "Mean intensity: %s kg CO2/kWh\n", FormatIntensity(view.Profile.Mean()))
	fmt.Fprintln(w)

	bestHour, _ := view.Profile.Min()
	worstHour, maxValue := view.Profile.Max()

	for hour, value := range view.Profile.Values {
		marker := " "
		switch hour {
		case bestHour:
			marker = "*"
		case worstHour:
			marker = "!"
		}
		fmt.Fprintf(w, "  %s %s %s %s\n",
			FormatHour(hour),
			FormatIntensity(value),
			Bar(value, maxValue, profileBarWidth),
			marker,
		)
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "* cleanest hour   ! dirtiest hour\n")

	if len(view.LowHours) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Lowest-intensity hours:")
		for _, h := range view.LowHours {
			fmt.Fprintf(w, "  %s  %s kg CO2/kWh\n", FormatHour(h.Hour), FormatIntensity(h.Intensity))
		}
	}
}

// ShiftView is the renderable view of a load-shift comparison.
type ShiftView struct {
	Region     string               `json:"region"`
	Season     string               `json:"season"`
	Comparison loadshift.Comparison `json:"comparison"`
}

// WriteShiftTable renders a multi-task load-shift comparison.
func WriteShiftTable(w io.Writer, view ShiftView) {
	fmt.Fprintln(w, "Load-Shift Analysis")
	fmt.Fprintln(w, "===================")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Region: %s   Season: %s\n", view.Region, view.Season)
	fmt.Fprintln(w)

	if len(view.Comparison.Rows) == 0 {
		fmt.Fprintln(w, "No tasks to evaluate")
		return
	}

	for _, row := range view.Comparison.Rows {
		fmt.Fprintf(w, "  %s (%s kWh at %s)\n",
			row.Task.Name, FormatFloat(row.Task.Kwh, 1), FormatHour(row.Task.Hour))
		fmt.Fprintf(w, "    now:  %s at %s kg CO2/kWh\n",
			FormatKg(row.EstimatedCO2), FormatIntensity(row.CurrentIntensity))
		fmt.Fprintf(w, "    best: %s at %s (%s kg CO2/kWh)\n",
			FormatKg(row.OptimalCO2), FormatHour(row.OptimalHour), FormatIntensity(row.OptimalIntensity))
		fmt.Fprintf(w, "    saves %s (%s)\n", FormatKg(row.SavingsKg), FormatPct(row.SavingsPct))
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "Total potential savings: %s\n", FormatKg(view.Comparison.TotalSavingsKg))
	if best := view.Comparison.Best; best != nil {
		fmt.Fprintf(w, "Best opportunity: %s -> %s\n", best.Task.Name, FormatHour(best.OptimalHour))
	}
}

// AnnualView is the renderable view of an annualized shift projection.
type AnnualView struct {
	Region      string               `json:"region"`
	Season      string               `json:"season"`
	DailyKwh    float64              `json:"daily_kwh"`
	CurrentHour int                  `json:"current_hour"`
	Projection  loadshift.Projection `json:"projection"`
}

// WriteAnnualTable renders the yearly effect of a permanent load shift.
func WriteAnnualTable(w io.Writer, view AnnualView) {
	fmt.Fprintln(w, "Annual Shift Projection")
	fmt.Fprintln(w, "=======================")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Region: %s   Season: %s\n", view.Region, view.Season)
	fmt.Fprintf(w, "Load: %s kWh/day at %s -> %s\n",
		FormatFloat(view.DailyKwh, 1), FormatHour(view.CurrentHour), FormatHour(view.Projection.BestHour))
	fmt.Fprintf(w, "Intensity: %s -> %s kg CO2/kWh\n",
		FormatIntensity(view.Projection.CurrentIntensity), FormatIntensity(view.Projection.BestIntensity))
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Daily savings:   %s\n", FormatKg(view.Projection.DailyKg))
	fmt.Fprintf(w, "Monthly savings: %s\n", FormatKg(view.Projection.MonthlyKg))
	fmt.Fprintf(w, "Yearly savings:  %s (%s of the load's emissions)\n",
		FormatKg(view.Projection.YearlyKg), FormatPct(view.Projection.SavingsPct))
	fmt.Fprintf(w, "Offset value:    $%s/year\n", view.Projection.YearlyCostUSD.StringFixed(2))
}

// PlanView is the renderable view of the forecast and weekly goal check.
type PlanView struct {
	History  []float64           `json:"history"`
	Forecast []float64           `json:"forecast"`
	Goal     *emissions.GoalPlan `json:"goal,omitempty"`
	TargetKg float64             `json:"target_kg,omitempty"`
}

// WritePlanTable renders the seven-day forecast and, when a target was
// given, the weekly goal budget.
func WritePlanTable(w io.Writer, view PlanView) {
	fmt.Fprintln(w, "Weekly Outlook")
	fmt.Fprintln(w, "==============")
	fmt.Fprintln(w)

	fmt.Fprintf(w, "History: %d day(s) recorded\n", len(view.History))
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Forecast (next 7 days):")
	for i, kg := range view.Forecast {
		fmt.Fprintf(w, "  day %d: %s\n", i+1, FormatKg(kg))
	}

	if view.Goal != nil {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Weekly target: %s\n", FormatKg(view.TargetKg))
		fmt.Fprintf(w, "Required pace: %s per remaining day\n", FormatKg(view.Goal.RequiredPerDay))
		switch {
		case view.Goal.DeltaVsCurrentAvg < 0:
			fmt.Fprintf(w, "Pace must tighten by %s/day vs the week so far\n",
				FormatKg(-view.Goal.DeltaVsCurrentAvg))
		default:
			fmt.Fprintln(w, "On track at the current pace")
		}
	}
}

// WriteOffsetTable renders an offset cost quote.
func WriteOffsetTable(w io.Writer, quote emissions.OffsetQuote) {
	fmt.Fprintln(w, "Offset Estimate")
	fmt.Fprintln(w, "---------------")
	fmt.Fprintf(w, "Emissions: %s t CO2e\n", FormatFloat(quote.Tonnes, 3))
	fmt.Fprintf(w, "Price: $%s/tonne\n", quote.PricePerTonneUSD.StringFixed(2))
	fmt.Fprintf(w, "Cost: $%s\n", quote.CostUSD.StringFixed(2))
	fmt.Fprintln(w, "Portfolio:")
	for _, p := range quote.Mix {
		fmt.Fprintf(w, "  %-20s %s\n", p.Project, FormatPct(p.Share))
	}
}

// RegionRow is one catalog region in the listing view.
type RegionRow struct {
	Code    string  `json:"code"`
	Base    float64 `json:"base_factor"`
	Implied float64 `json:"implied_intensity"`
	Source  string  `json:"source,omitempty"`
}

// WriteRegionsTable renders the region listing.
func WriteRegionsTable(w io.Writer, rows []RegionRow) {
	fmt.Fprintln(w, "Grid Regions")
	fmt.Fprintln(w, "============")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  %-8s %-10s %-10s %s\n", "Code", "Base", "Implied", "Source")
	for _, row := range rows {
		fmt.Fprintf(w, "  %-8s %-10s %-10s %s\n",
			row.Code, FormatIntensity(row.Base), FormatIntensity(row.Implied), row.Source)
	}
}

// DeviceRow is one device preset in the listing view.
type DeviceRow struct {
	Name     string  `json:"name"`
	Category string  `json:"category"`
	PowerW   float64 `json:"power_w"`
	Hours    float64 `json:"hours_per_day"`
}

// WriteDevicesTable renders the device preset listing grouped by category.
func WriteDevicesTable(w io.Writer, rows []DeviceRow) {
	fmt.Fprintln(w, "Device Presets")
	fmt.Fprintln(w, "==============")

	byCategory := make(map[string][]DeviceRow)
	for _, row := range rows {
		byCategory[row.Category] = append(byCategory[row.Category], row)
	}

	categories := make([]string, 0, len(byCategory))
	for cat := range byCategory {
		categories = append(categories, cat)
	}
	sort.Strings(categories)

	for _, cat := range categories {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "%s:\n", cat)
		for _, row := range byCategory[cat] {
			fmt.Fprintf(w, "  %-28s %6s W  %4s h/day\n",
				row.Name, FormatFloat(row.PowerW, 0), FormatFloat(row.Hours, 1))
		}
	}
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
