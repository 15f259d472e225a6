package module

// RenderedSection is the presentation of one section handed to clients.
// Exactly one payload pointer is populated for a well-formed section; a
// section whose expected payload is absent renders as a placeholder
// instead of failing, so one malformed section never blocks the rest of
// the module.
type RenderedSection struct {
	ID                  string          `json:"id"`
	Title               string          `json:"title"`
	ContentType         ContentType     `json:"content_type"`
	Label               string          `json:"label"`
	Icon                string          `json:"icon"`
	Position            int             `json:"position"`
	IsRequired          bool            `json:"is_required"`
	TimeEstimateMinutes int             `json:"time_estimate_minutes"`
	LearningStyleTags   []LearningStyle `json:"learning_style_tags,omitempty"`
	KeyPoints           []string        `json:"key_points,omitempty"`
	Placeholder         bool            `json:"placeholder,omitempty"`

	Text        string            `json:"text,omitempty"`
	Video       *VideoData        `json:"video,omitempty"`
	Audio       *AudioData        `json:"audio,omitempty"`
	Table       *TableData        `json:"table,omitempty"`
	Diagram     *DiagramData      `json:"diagram,omitempty"`
	Highlight   *HighlightData    `json:"highlight,omitempty"`
	Interactive *InteractiveData  `json:"interactive,omitempty"`
	Activity    *ActivityData     `json:"activity,omitempty"`
	Question    *RenderedQuestion `json:"question,omitempty"`

	Completed bool          `json:"completed"`
	Result    *AnswerResult `json:"result,omitempty"`
}

// RenderedQuestion is the learner-facing projection of a Question: the
// correct answer stays server-side until a result is revealed.
type RenderedQuestion struct {
	Type             QuestionType `json:"type"`
	Widget           string       `json:"widget"`
	Question         string       `json:"question"`
	Options          []string     `json:"options,omitempty"`
	Points           int          `json:"points"`
	TimeLimitSeconds int          `json:"time_limit_seconds,omitempty"`
	Hints            []string     `json:"hints,omitempty"`
}

// questionWidget picks the input widget for a question type.
func questionWidget(qt QuestionType) string {
	switch qt {
	case QuestionMultipleChoice:
		return "radio-group"
	case QuestionTrueFalse:
		return "true-false-toggle"
	case QuestionMatching:
		return "matching-pairs"
	case QuestionShortAnswer:
		return "text-input"
	case QuestionInteractive:
		return "embedded-interactive"
	}
	return "unsupported"
}

// Render projects one section for display; a pure function of the section
// plus the viewer's completion/answer state.
func (v *Viewer) Render(sec ContentSection) RenderedSection {
	info := sec.ContentType.Info()
	out := RenderedSection{
		ID:                  sec.ID,
		Title:               sec.Title,
		ContentType:         sec.ContentType,
		Label:               info.Label,
		Icon:                info.Icon,
		Position:            sec.Position,
		IsRequired:          sec.IsRequired,
		TimeEstimateMinutes: sec.TimeEstimateMinutes,
		LearningStyleTags:   sec.LearningStyleTags,
		KeyPoints:           sec.KeyPoints,
		Completed:           v.completed[sec.ID],
	}
	if res, ok := v.answers[sec.ID]; ok {
		out.Result = &res
	}

	switch content := sec.Content.(type) {
	case *TextContent:
		out.Text = content.Text
		out.Placeholder = content.Text == ""
	case *VideoContent:
		out.Video = content.Video
		out.Placeholder = content.Video == nil
	case *AudioContent:
		out.Audio = content.Audio
		out.Placeholder = content.Audio == nil
	case *TableContent:
		out.Table = content.Table
		out.Placeholder = content.Table == nil
	case *DiagramContent:
		out.Diagram = content.Diagram
		out.Placeholder = content.Diagram == nil
	case *HighlightContent:
		out.Highlight = content.Highlight
		out.Placeholder = content.Highlight == nil
	case *InteractiveContent:
		out.Interactive = content.Interactive
		out.Placeholder = content.Interactive == nil
	case *ActivityContent:
		out.Activity = content.Activity
		out.Placeholder = content.Activity == nil
	case *AssessmentContent:
		out.Question = renderQuestion(content.Quiz)
		out.Placeholder = content.Quiz == nil
	case *QuickCheckContent:
		out.Question = renderQuestion(content.QuickCheck)
		out.Placeholder = content.QuickCheck == nil
	default: // unrecognized content type degrades to a placeholder view
		out.Label = "Unsupported"
		out.Placeholder = true
	}
	return out
}

// RenderCurrent renders the section at the current index.
func (v *Viewer) RenderCurrent() (RenderedSection, bool) {
	sec, ok := v.Current()
	if !ok {
		return RenderedSection{}, false
	}
	return v.Render(sec), true
}

// RenderAll renders every section in list order.
func (v *Viewer) RenderAll() []RenderedSection {
	out := make([]RenderedSection, 0, len(v.doc.Sections))
	for _, sec := range v.doc.Sections {
		out = append(out, v.Render(sec))
	}
	return out
}

func renderQuestion(q *Question) *RenderedQuestion {
	if q == nil {
		return nil
	}
	return &RenderedQuestion{
		Type:             q.Type,
		Widget:           questionWidget(q.Type),
		Question:         q.Question,
		Options:          q.Options,
		Points:           q.Points,
		TimeLimitSeconds: q.TimeLimitSeconds,
		Hints:            q.Hints,
	}
}
