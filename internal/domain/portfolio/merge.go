package portfolio

// Merge layers override records in front of bundled ones. No deduplication:
// len(result) == len(override) + len(bundled). Neither input is modified.
func Merge[T any](override, bundled []T) []T {
	out := make([]T, 0, len(override)+len(bundled))
	out = append(out, override...)
	return append(out, bundled...)
}

// MergedView is what the page renders. It is recomputed on every read.
type MergedView struct {
	Experience []ExperienceEntry `json:"experience"`
	Projects   []ProjectEntry    `json:"projects"`
	Skills     []SkillGroup      `json:"skills"`
}

func NewMergedView(state OverrideState, bundled BundledDataset) MergedView {
	return MergedView{
		Experience: Merge(state.Experience, bundled.Experience),
		Projects:   Merge(state.Projects, bundled.Projects),
		Skills:     Merge(state.Skills, bundled.Skills),
	}
}
