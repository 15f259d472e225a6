package module

import (
	"encoding/json"
)

// ContentType discriminates the payload carried by a ContentSection.
type ContentType string

const (
	ContentText        ContentType = "text"
	ContentVideo       ContentType = "video"
	ContentAudio       ContentType = "audio"
	ContentTable       ContentType = "table"
	ContentDiagram     ContentType = "diagram"
	ContentHighlight   ContentType = "highlight"
	ContentInteractive ContentType = "interactive"
	ContentAssessment  ContentType = "assessment"
	ContentActivity    ContentType = "activity"
	ContentQuickCheck  ContentType = "quick_check"
)

var ContentTypes = []ContentType{
	ContentText, ContentVideo, ContentAudio, ContentTable, ContentDiagram,
	ContentHighlight, ContentInteractive, ContentAssessment, ContentActivity, ContentQuickCheck,
}

func (ct ContentType) Valid() bool {
	_, ok := contentTypeInfos[ct]
	return ok
}

// ContentTypeInfo is the static per-type presentation metadata
// (the lookup tables the dashboards share).
type ContentTypeInfo struct {
	Label  string          `json:"label"`
	Icon   string          `json:"icon"`
	Color  string          `json:"color"`
	Styles []LearningStyle `json:"styles"`
}

var contentTypeInfos = map[ContentType]ContentTypeInfo{
	ContentText:        {Label: "Text", Icon: "file-text", Color: "slate", Styles: []LearningStyle{StyleReadingWriting}},
	ContentVideo:       {Label: "Video", Icon: "video", Color: "red", Styles: []LearningStyle{StyleVisual, StyleAuditory}},
	ContentAudio:       {Label: "Audio", Icon: "headphones", Color: "purple", Styles: []LearningStyle{StyleAuditory}},
	ContentTable:       {Label: "Table", Icon: "table", Color: "blue", Styles: []LearningStyle{StyleVisual, StyleReadingWriting}},
	ContentDiagram:     {Label: "Diagram", Icon: "git-branch", Color: "teal", Styles: []LearningStyle{StyleVisual}},
	ContentHighlight:   {Label: "Highlight", Icon: "star", Color: "amber", Styles: []LearningStyle{StyleReadingWriting}},
	ContentInteractive: {Label: "Interactive", Icon: "mouse-pointer", Color: "green", Styles: []LearningStyle{StyleKinesthetic}},
	ContentAssessment:  {Label: "Assessment", Icon: "clipboard-check", Color: "indigo", Styles: []LearningStyle{StyleReadingWriting}},
	ContentActivity:    {Label: "Activity", Icon: "activity", Color: "orange", Styles: []LearningStyle{StyleKinesthetic}},
	ContentQuickCheck:  {Label: "Quick Check", Icon: "check-circle", Color: "cyan", Styles: []LearningStyle{StyleReadingWriting}},
}

func (ct ContentType) Info() ContentTypeInfo {
	return contentTypeInfos[ct]
}

// LearningStyle is the VARK taxonomy used to tag content and scope delivery.
type LearningStyle string

const (
	StyleVisual         LearningStyle = "visual"
	StyleAuditory       LearningStyle = "auditory"
	StyleReadingWriting LearningStyle = "reading_writing"
	StyleKinesthetic    LearningStyle = "kinesthetic"
)

var LearningStyles = []LearningStyle{StyleVisual, StyleAuditory, StyleReadingWriting, StyleKinesthetic}

func (ls LearningStyle) Valid() bool {
	switch ls {
	case StyleVisual, StyleAuditory, StyleReadingWriting, StyleKinesthetic:
		return true
	}
	return false
}

// SectionContent is the content_data payload of a ContentSection.
// Exactly one implementation exists per ContentType so a section can never
// carry a payload that disagrees with its discriminator.
type SectionContent interface {
	contentType() ContentType
	// missingFields lists the wire-level fields still required before the
	// section may be saved; empty means complete.
	missingFields() []string
}

// NewContent returns the empty payload for the given content type,
// or nil for an unrecognized type.
func NewContent(ct ContentType) SectionContent {
	switch ct {
	case ContentText:
		return &TextContent{}
	case ContentVideo:
		return &VideoContent{}
	case ContentAudio:
		return &AudioContent{}
	case ContentTable:
		return &TableContent{}
	case ContentDiagram:
		return &DiagramContent{}
	case ContentHighlight:
		return &HighlightContent{}
	case ContentInteractive:
		return &InteractiveContent{}
	case ContentAssessment:
		return &AssessmentContent{}
	case ContentActivity:
		return &ActivityContent{}
	case ContentQuickCheck:
		return &QuickCheckContent{}
	}
	return nil
}

type TextContent struct {
	Text string `json:"text,omitempty"`
}

func (c *TextContent) contentType() ContentType { return ContentText }
func (c *TextContent) missingFields() []string {
	if c.Text == "" {
		return []string{"text"}
	}
	return nil
}

type VideoData struct {
	URL             string `json:"url"`
	Title           string `json:"title,omitempty"`
	DurationMinutes int    `json:"duration,omitempty"`
	Autoplay        bool   `json:"autoplay,omitempty"`
}

type VideoContent struct {
	Video *VideoData `json:"video_data,omitempty"`
}

func (c *VideoContent) contentType() ContentType { return ContentVideo }
func (c *VideoContent) missingFields() []string {
	if c.Video == nil {
		return []string{"video_data"}
	}
	if c.Video.URL == "" {
		return []string{"video_data.url"}
	}
	return nil
}

type AudioData struct {
	URL             string `json:"url"`
	Title           string `json:"title,omitempty"`
	DurationMinutes int    `json:"duration,omitempty"`
	Transcript      string `json:"transcript,omitempty"`
}

type AudioContent struct {
	Audio *AudioData `json:"audio_data,omitempty"`
}

func (c *AudioContent) contentType() ContentType { return ContentAudio }
func (c *AudioContent) missingFields() []string {
	if c.Audio == nil {
		return []string{"audio_data"}
	}
	if c.Audio.URL == "" {
		return []string{"audio_data.url"}
	}
	return nil
}

type TableData struct {
	Headers []string   `json:"headers"`
	Rows    [][]string `json:"rows"`
	Caption string     `json:"caption,omitempty"`
	Styling string     `json:"styling,omitempty"`
}

type TableContent struct {
	Table *TableData `json:"table_data,omitempty"`
}

func (c *TableContent) contentType() ContentType { return ContentTable }
func (c *TableContent) missingFields() []string {
	if c.Table == nil {
		return []string{"table_data"}
	}
	var missing []string
	if len(c.Table.Headers) == 0 {
		missing = append(missing, "table_data.headers")
	}
	if len(c.Table.Rows) == 0 {
		missing = append(missing, "table_data.rows")
	}
	return missing
}

type DiagramData struct {
	URL     string   `json:"url"`
	Caption string   `json:"caption,omitempty"`
	AltText string   `json:"alt_text,omitempty"`
	Labels  []string `json:"labels,omitempty"`
}

type DiagramContent struct {
	Diagram *DiagramData `json:"diagram_data,omitempty"`
}

func (c *DiagramContent) contentType() ContentType { return ContentDiagram }
func (c *DiagramContent) missingFields() []string {
	if c.Diagram == nil {
		return []string{"diagram_data"}
	}
	if c.Diagram.URL == "" {
		return []string{"diagram_data.url"}
	}
	return nil
}

type HighlightData struct {
	Text  string `json:"text"`
	Style string `json:"style,omitempty"` // info | warning | success | tip
}

type HighlightContent struct {
	Highlight *HighlightData `json:"highlight_data,omitempty"`
}

func (c *HighlightContent) contentType() ContentType { return ContentHighlight }
func (c *HighlightContent) missingFields() []string {
	if c.Highlight == nil {
		return []string{"highlight_data"}
	}
	if c.Highlight.Text == "" {
		return []string{"highlight_data.text"}
	}
	return nil
}

type InteractiveData struct {
	Kind         string   `json:"type"` // drag_and_drop | simulation | virtual_lab | gamification
	Title        string   `json:"title,omitempty"`
	Instructions []string `json:"instructions,omitempty"`
	EmbedURL     string   `json:"embed_url,omitempty"`
}

type InteractiveContent struct {
	Interactive *InteractiveData `json:"interactive_data,omitempty"`
}

func (c *InteractiveContent) contentType() ContentType { return ContentInteractive }
func (c *InteractiveContent) missingFields() []string {
	if c.Interactive == nil {
		return []string{"interactive_data"}
	}
	var missing []string
	if c.Interactive.Kind == "" {
		missing = append(missing, "interactive_data.type")
	}
	if c.Interactive.Title == "" {
		missing = append(missing, "interactive_data.title")
	}
	return missing
}

type AssessmentContent struct {
	Quiz *Question `json:"quiz_data,omitempty"`
}

func (c *AssessmentContent) contentType() ContentType { return ContentAssessment }
func (c *AssessmentContent) missingFields() []string {
	return questionMissingFields(c.Quiz, "quiz_data")
}

type QuickCheckContent struct {
	QuickCheck *Question `json:"quick_check_data,omitempty"`
}

func (c *QuickCheckContent) contentType() ContentType { return ContentQuickCheck }
func (c *QuickCheckContent) missingFields() []string {
	return questionMissingFields(c.QuickCheck, "quick_check_data")
}

type ActivityData struct {
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	Instructions    []string `json:"instructions"`
	Materials       []string `json:"materials,omitempty"`
	ExpectedOutcome string   `json:"expected_outcome,omitempty"`
}

type ActivityContent struct {
	Activity *ActivityData `json:"activity_data,omitempty"`
}

func (c *ActivityContent) contentType() ContentType { return ContentActivity }
func (c *ActivityContent) missingFields() []string {
	if c.Activity == nil {
		return []string{"activity_data"}
	}
	var missing []string
	if c.Activity.Title == "" {
		missing = append(missing, "activity_data.title")
	}
	if c.Activity.Description == "" {
		missing = append(missing, "activity_data.description")
	}
	if len(c.Activity.Instructions) == 0 {
		missing = append(missing, "activity_data.instructions")
	}
	return missing
}

// ContentSection is one typed page of content within a module.
type ContentSection struct {
	ID                  string
	Title               string
	ContentType         ContentType
	Content             SectionContent // nil when ContentType is unrecognized
	Position            int
	IsRequired          bool
	TimeEstimateMinutes int
	LearningStyleTags   []LearningStyle
	InteractiveElements []string
	KeyPoints           []string
}

type (
	sectionWire struct {
		ID                  string          `json:"id"`
		Title               string          `json:"title"`
		ContentType         ContentType     `json:"content_type"`
		ContentData         json.RawMessage `json:"content_data"`
		Position            int             `json:"position"`
		IsRequired          bool            `json:"is_required"`
		TimeEstimateMinutes int             `json:"time_estimate_minutes"`
		LearningStyleTags   []LearningStyle `json:"learning_style_tags,omitempty"`
		InteractiveElements []string        `json:"interactive_elements,omitempty"`
		Metadata            *sectionMeta    `json:"metadata,omitempty"`
	}

	sectionMeta struct {
		KeyPoints []string `json:"key_points,omitempty"`
	}
)

var emptyObject = json.RawMessage("{}")

// MarshalJSON keeps the legacy interchange shape: the payload is nested
// under content_data with its type-specific wrapper key.
func (s ContentSection) MarshalJSON() ([]byte, error) {
	wire := sectionWire{
		ID:                  s.ID,
		Title:               s.Title,
		ContentType:         s.ContentType,
		ContentData:         emptyObject,
		Position:            s.Position,
		IsRequired:          s.IsRequired,
		TimeEstimateMinutes: s.TimeEstimateMinutes,
		LearningStyleTags:   s.LearningStyleTags,
		InteractiveElements: s.InteractiveElements,
	}
	if s.Content != nil {
		data, err := json.Marshal(s.Content)
		if err != nil {
			return nil, err
		}
		wire.ContentData = data
	}
	if len(s.KeyPoints) > 0 {
		wire.Metadata = &sectionMeta{KeyPoints: s.KeyPoints}
	}
	return json.Marshal(wire)
}

// UnmarshalJSON dispatches content_data into the payload matching
// content_type. An unrecognized type yields a nil payload (reported by
// validation), never an unmarshal failure.
func (s *ContentSection) UnmarshalJSON(data []byte) error {
	var wire sectionWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	*s = ContentSection{
		ID:                  wire.ID,
		Title:               wire.Title,
		ContentType:         wire.ContentType,
		Position:            wire.Position,
		IsRequired:          wire.IsRequired,
		TimeEstimateMinutes: wire.TimeEstimateMinutes,
		LearningStyleTags:   wire.LearningStyleTags,
		InteractiveElements: wire.InteractiveElements,
	}
	if wire.Metadata != nil {
		s.KeyPoints = wire.Metadata.KeyPoints
	}
	s.Content = NewContent(wire.ContentType)
	if s.Content != nil && len(wire.ContentData) > 0 {
		if err := json.Unmarshal(wire.ContentData, s.Content); err != nil {
			return err
		}
	}
	return nil
}
