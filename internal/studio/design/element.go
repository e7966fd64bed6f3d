package design

// ============================================================
// Design Elements
// ============================================================

// Vec3 — позиция в пространстве сцены.
type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// TextElement — текстовый оверлей на силуэте.
type TextElement struct {
	ID       string  `json:"id"`
	Text     string  `json:"text"`
	Color    string  `json:"color"`
	Size     float64 `json:"size"`
	Position Vec3    `json:"position"`
}

// LogoElement — логотип; Ref это URL или идентификатор загруженного файла.
type LogoElement struct {
	ID       string  `json:"id"`
	Ref      string  `json:"ref"`
	Scale    float64 `json:"scale"`
	Position Vec3    `json:"position"`
}

// ElementUpdate — частичное обновление; nil-поля не трогаются.
// Поля применяются только к подходящему виду элемента.
type ElementUpdate struct {
	Text     *string  `json:"text,omitempty"`
	Color    *string  `json:"color,omitempty"`
	Size     *float64 `json:"size,omitempty"`
	Ref      *string  `json:"ref,omitempty"`
	Scale    *float64 `json:"scale,omitempty"`
	Position *Vec3    `json:"position,omitempty"`
}

func (e *TextElement) apply(upd ElementUpdate) {
	if upd.Text != nil && *upd.Text != "" {
		e.Text = *upd.Text
	}
	if upd.Color != nil {
		e.Color = *upd.Color
	}
	if upd.Size != nil {
		e.Size = *upd.Size
	}
	if upd.Position != nil {
		e.Position = *upd.Position
	}
}

func (e *LogoElement) apply(upd ElementUpdate) {
	if upd.Ref != nil && *upd.Ref != "" {
		e.Ref = *upd.Ref
	}
	if upd.Scale != nil {
		e.Scale = *upd.Scale
	}
	if upd.Position != nil {
		e.Position = *upd.Position
	}
}
