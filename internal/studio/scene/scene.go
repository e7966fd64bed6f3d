package scene

import (
	"esports-store/internal/studio/assets"
	"esports-store/internal/studio/design"
)

// ============================================================
// Scene Renderer
// ============================================================

// Scene — декларативное описание кадра: силуэт, оверлеи и статичный риг.
// Чистая проекция DesignSession, своего состояния не имеет.
type Scene struct {
	Camera Camera     `json:"camera"`
	Orbit  Orbit      `json:"orbit"`
	Lights []Light    `json:"lights"`
	Grid   Grid       `json:"grid"`
	Meshes []Mesh     `json:"meshes"`
	Texts  []TextNode `json:"texts"`
	Logos  []LogoNode `json:"logos"`
}

type Camera struct {
	Type     string      `json:"type"`
	Position design.Vec3 `json:"position"`
}

type Orbit struct {
	Pan    bool `json:"pan"`
	Zoom   bool `json:"zoom"`
	Rotate bool `json:"rotate"`
}

type Light struct {
	Type      string      `json:"type"` // ambient, directional
	Intensity float64     `json:"intensity"`
	Position  design.Vec3 `json:"position,omitempty"`
}

type Grid struct {
	Size      int `json:"size"`
	Divisions int `json:"divisions"`
}

// Mesh — примитив силуэта, окрашенный базовым цветом сессии.
type Mesh struct {
	Primitive
	Color string `json:"color"`
}

// TextNode — рендер-узел текстового элемента.
type TextNode struct {
	ID       string      `json:"id"`
	Text     string      `json:"text"`
	Color    string      `json:"color"`
	Size     float64     `json:"size"`
	Height   float64     `json:"height"`
	Position design.Vec3 `json:"position"`
}

// LogoNode — рендер-узел логотипа. Пока текстура не готова (или упала),
// узел рисуется плейсхолдером — детерминированно, вместо молчаливого
// пропуска.
type LogoNode struct {
	ID          string       `json:"id"`
	Ref         string       `json:"ref"`
	Scale       float64      `json:"scale"`
	Position    design.Vec3  `json:"position"`
	Texture     assets.Status `json:"texture"`
	Placeholder bool         `json:"placeholder"`
	Color       string       `json:"color,omitempty"`
}

const (
	textDepth        = 0.05
	placeholderColor = "#ff6b6b"
)

// staticRig — камера, свет и сетка не зависят от состояния сессии.
func staticRig() (Camera, Orbit, []Light, Grid) {
	camera := Camera{Type: "perspective", Position: design.Vec3{Z: 5}}
	orbit := Orbit{Pan: true, Zoom: true, Rotate: true}
	lights := []Light{
		{Type: "ambient", Intensity: 0.5},
		{Type: "directional", Intensity: 1, Position: design.Vec3{X: 10, Y: 10, Z: 5}},
		{Type: "directional", Intensity: 0.5, Position: design.Vec3{X: -10, Y: -10, Z: -5}},
	}
	grid := Grid{Size: 10, Divisions: 10}
	return camera, orbit, lights, grid
}

// Render строит сцену из сессии и состояний текстур. Порядок узлов —
// порядок вставки элементов; это единственный слойный порядок.
func Render(session *design.Session, texture func(ref string) assets.Status) Scene {
	camera, orbit, lights, grid := staticRig()

	scene := Scene{
		Camera: camera,
		Orbit:  orbit,
		Lights: lights,
		Grid:   grid,
	}

	for _, primitive := range Silhouette(session.ProductType) {
		scene.Meshes = append(scene.Meshes, Mesh{
			Primitive: primitive,
			Color:     session.BaseColor,
		})
	}

	for _, element := range session.Texts {
		scene.Texts = append(scene.Texts, TextNode{
			ID:       element.ID,
			Text:     element.Text,
			Color:    element.Color,
			Size:     element.Size,
			Height:   textDepth,
			Position: element.Position,
		})
	}

	for _, element := range session.Logos {
		status := texture(element.Ref)
		node := LogoNode{
			ID:       element.ID,
			Ref:      element.Ref,
			Scale:    element.Scale,
			Position: element.Position,
			Texture:  status,
		}
		if status != assets.StatusReady {
			node.Placeholder = true
			node.Color = placeholderColor
		}
		scene.Logos = append(scene.Logos, node)
	}

	return scene
}
