package model

// DefaultComplexity is reported when a response never states a Big-O bound.
const DefaultComplexity = "O(n)"

// MaxApproachBullets caps the approach list shown above each solution tab.
const MaxApproachBullets = 3

const (
	// MinExplanationBullets is the bullet count at which the explanation
	// switches from plain paragraphs to intro + list.
	MinExplanationBullets = 3
	// MaxExplanationBullets caps the bullet list in the explanation tab.
	MaxExplanationBullets = 6
)

// ParsedAnalysis is derived from a single AI response and never mutated
// after the parser returns it.
type ParsedAnalysis struct {
	Heading         *string           `json:"heading" yaml:"heading"`
	ApproachBullets []ApproachBullet  `json:"approach_bullets" yaml:"approach_bullets"`
	PythonCode      string            `json:"python_code" yaml:"python_code"`
	CppCode         string            `json:"cpp_code" yaml:"cpp_code"`
	TimeComplexity  string            `json:"time_complexity" yaml:"time_complexity"`
	SpaceComplexity string            `json:"space_complexity" yaml:"space_complexity"`
	Explanation     ParsedExplanation `json:"explanation" yaml:"explanation"`
}

// HeadingText returns the heading or an empty string when none was found.
func (a ParsedAnalysis) HeadingText() string {
	if a.Heading == nil {
		return ""
	}
	return *a.Heading
}

type ApproachBullet struct {
	Text      string `json:"text" yaml:"text"`
	Important bool   `json:"important" yaml:"important"`
}

// ParsedExplanation holds the prose of a response with all code fences removed.
// Paragraphs exclude bullet lines only when the bullet list is long enough
// to be rendered on its own.
type ParsedExplanation struct {
	BulletPoints []string `json:"bullet_points" yaml:"bullet_points"`
	Paragraphs   []string `json:"paragraphs" yaml:"paragraphs"`
}

// ExplanationLayout is the render order of an explanation.
type ExplanationLayout struct {
	Intro      string   `json:"intro,omitempty" yaml:"intro,omitempty"`
	Bullets    []string `json:"bullets,omitempty" yaml:"bullets,omitempty"`
	Paragraphs []string `json:"paragraphs,omitempty" yaml:"paragraphs,omitempty"`
}

// HasBulletList reports whether the explanation renders as intro + list.
func (e ParsedExplanation) HasBulletList() bool {
	return len(e.BulletPoints) >= MinExplanationBullets
}

// Layout applies the rendering policy: with three or more bullets the first
// paragraph becomes the intro, followed by at most six bullets and then the
// remaining paragraphs. Otherwise only paragraphs are rendered.
func (e ParsedExplanation) Layout() ExplanationLayout {
	if !e.HasBulletList() {
		return ExplanationLayout{Paragraphs: append([]string(nil), e.Paragraphs...)}
	}

	var layout ExplanationLayout
	if len(e.Paragraphs) > 0 {
		layout.Intro = e.Paragraphs[0]
		layout.Paragraphs = append([]string(nil), e.Paragraphs[1:]...)
	}
	n := len(e.BulletPoints)
	if n > MaxExplanationBullets {
		n = MaxExplanationBullets
	}
	layout.Bullets = append([]string(nil), e.BulletPoints[:n]...)
	return layout
}

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
)

// ChatMessage is one entry of the in-memory chat history.
type ChatMessage struct {
	Role    Role   `json:"role" yaml:"role"`
	Content string `json:"content" yaml:"content"`
}
