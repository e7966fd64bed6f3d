package scene

import "esports-store/internal/studio/design"

// ============================================================
// Silhouette Table
// ============================================================

// Primitive — один примитив сборки силуэта.
// Args повторяют аргументы геометрии рендер-библиотеки:
// box: w,h,d; cylinder: rTop,rBottom,h,segments;
// sphere: r,wSeg,hSeg,phiStart,phiLen,thetaStart,thetaLen.
type Primitive struct {
	Shape    string      `json:"shape"`
	Args     []float64   `json:"args"`
	Position design.Vec3 `json:"position"`
	Rotation design.Vec3 `json:"rotation"`
}

const (
	halfPi   = 1.5707963267948966
	pi       = 3.141592653589793
	twoPi    = 6.283185307179586
	eighthPi = 0.39269908169872414
)

// silhouettes — фиксированные сборки по типу товара. Новый силуэт —
// новая строка таблицы, а не параметрическая модель.
var silhouettes = map[string][]Primitive{
	"jersey": {
		{Shape: "box", Args: []float64{2, 2.5, 0.2}},
		{Shape: "cylinder", Args: []float64{0.3, 0.3, 1.5, 16}, Position: design.Vec3{X: -1.2, Y: 0.5}},
		{Shape: "cylinder", Args: []float64{0.3, 0.3, 1.5, 16}, Position: design.Vec3{X: 1.2, Y: 0.5}},
	},
	"hoodie": {
		{Shape: "box", Args: []float64{2, 2.5, 0.2}, Position: design.Vec3{Y: 0.3}},
		{Shape: "cylinder", Args: []float64{0.5, 0.6, 0.5, 16}, Position: design.Vec3{Y: 1.5}},
		{Shape: "cylinder", Args: []float64{0.3, 0.3, 1.5, 16}, Position: design.Vec3{X: -1.2, Y: 0.8}},
		{Shape: "cylinder", Args: []float64{0.3, 0.3, 1.5, 16}, Position: design.Vec3{X: 1.2, Y: 0.8}},
	},
	"trousers": {
		{Shape: "cylinder", Args: []float64{0.3, 0.35, 2.5, 16}, Position: design.Vec3{X: -0.4}},
		{Shape: "cylinder", Args: []float64{0.3, 0.35, 2.5, 16}, Position: design.Vec3{X: 0.4}},
		{Shape: "box", Args: []float64{1.5, 0.4, 0.2}, Position: design.Vec3{Y: 1.2}},
	},
	"mousepad": {
		{Shape: "box", Args: []float64{3, 2.5, 0.1}, Rotation: design.Vec3{X: -halfPi}},
	},
	"cap": {
		{Shape: "sphere", Args: []float64{0.8, 32, 16, 0, twoPi, 0, halfPi}},
		{Shape: "box", Args: []float64{1.2, 0.05, 0.8}, Position: design.Vec3{Z: 0.5}, Rotation: design.Vec3{X: eighthPi}},
	},
	"t-shirt": {
		{Shape: "box", Args: []float64{2, 2, 0.2}},
		{Shape: "cylinder", Args: []float64{0.25, 0.25, 1.2, 16}, Position: design.Vec3{X: -1.2, Y: 0.3}},
		{Shape: "cylinder", Args: []float64{0.25, 0.25, 1.2, 16}, Position: design.Vec3{X: 1.2, Y: 0.3}},
	},
	"arm-sleeves": {
		{Shape: "cylinder", Args: []float64{0.2, 0.25, 1.5, 16}, Position: design.Vec3{X: -0.5}},
		{Shape: "cylinder", Args: []float64{0.2, 0.25, 1.5, 16}, Position: design.Vec3{X: 0.5}},
	},
	"finger-sleeves": {
		{Shape: "cylinder", Args: []float64{0.08, 0.1, 0.6, 16}, Position: design.Vec3{X: -0.3}},
		{Shape: "cylinder", Args: []float64{0.08, 0.1, 0.6, 16}, Position: design.Vec3{X: 0.3}},
	},
}

// fallback для неизвестного типа — плоская панель.
var fallbackSilhouette = []Primitive{
	{Shape: "box", Args: []float64{2, 2.5, 0.2}},
}

// Silhouette возвращает сборку примитивов для типа товара.
func Silhouette(productType string) []Primitive {
	if primitives, ok := silhouettes[productType]; ok {
		return primitives
	}
	return fallbackSilhouette
}
