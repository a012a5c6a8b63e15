package signal

import "strings"

// Pattern identifica un perfil de ritmo/morfología.
type Pattern string

const (
	Normal                     Pattern = "normal"
	Tachycardia                Pattern = "tachycardia"
	Bradycardia                Pattern = "bradycardia"
	Arrhythmia                 Pattern = "arrhythmia"
	AtrialFibrillation         Pattern = "atrialFibrillation"
	STElevation                Pattern = "stElevation"
	STDepression               Pattern = "stDepression"
	PVC                        Pattern = "pvc"
	LeftVentricularHypertrophy Pattern = "leftVentricularHypertrophy"
)

// Params son las amplitudes de cada onda del complejo PQRST.
// Una amplitud 0 suprime la onda; negativa la invierte.
type Params struct {
	PWave    float64
	RWave    float64
	TWave    float64
	SDepth   float64
	QDepth   float64
	STOffset float64
}

var normalParams = Params{PWave: 15, RWave: 80, TWave: 20, SDepth: 30, QDepth: 10}

var patternParams = map[Pattern]Params{
	Normal:                     normalParams,
	Tachycardia:                normalParams,
	Bradycardia:                normalParams,
	Arrhythmia:                 normalParams,
	AtrialFibrillation:         {PWave: 0, RWave: 80, TWave: 20, SDepth: 30, QDepth: 10},
	STElevation:                {PWave: 15, RWave: 80, TWave: 20, SDepth: 30, QDepth: 10, STOffset: 15},
	STDepression:               {PWave: 15, RWave: 80, TWave: 20, SDepth: 30, QDepth: 10, STOffset: -10},
	PVC:                        {PWave: 0, RWave: 100, TWave: -30, SDepth: 30, QDepth: 20},
	LeftVentricularHypertrophy: {PWave: 15, RWave: 120, TWave: 20, SDepth: 30, QDepth: 10},
}

// spacing describe la distribución del factor de separación entre latidos:
// center + spread*n con n uniforme en [-1,1].
type spacing struct {
	center float64
	spread float64
}

var patternSpacing = map[Pattern]spacing{
	Normal:             {center: 1.0, spread: 0.05},
	Tachycardia:        {center: 0.7, spread: 0.05},
	Bradycardia:        {center: 1.5, spread: 0.05},
	Arrhythmia:         {center: 1.1, spread: 0.4},
	AtrialFibrillation: {center: 1.0, spread: 0.2},
}

var patternPresets = map[Pattern]int{
	Normal:                     20,
	Tachycardia:                30,
	Bradycardia:                15,
	Arrhythmia:                 20,
	AtrialFibrillation:         25,
	STElevation:                20,
	LeftVentricularHypertrophy: 20,
}

var aliases = map[string]Pattern{
	"afib": AtrialFibrillation,
	"pvcs": PVC,
	"lvh":  LeftVentricularHypertrophy,
}

// Patterns devuelve todas las variantes soportadas.
func Patterns() []Pattern {
	return []Pattern{
		Normal, Tachycardia, Bradycardia, Arrhythmia, AtrialFibrillation,
		STElevation, STDepression, PVC, LeftVentricularHypertrophy,
	}
}

// ParsePattern nunca falla: nombres desconocidos vuelven a Normal.
func ParsePattern(name string) Pattern {
	name = strings.TrimSpace(name)
	if p, ok := aliases[strings.ToLower(name)]; ok {
		return p
	}
	p := Pattern(name)
	if _, ok := patternParams[p]; ok {
		return p
	}
	for _, known := range Patterns() {
		if strings.EqualFold(string(known), name) {
			return known
		}
	}
	return Normal
}

// Params devuelve la tupla de parámetros; patrones desconocidos usan la normal.
func (p Pattern) Params() Params {
	if params, ok := patternParams[p]; ok {
		return params
	}
	return normalParams
}

// Preset es la cantidad de latidos de los datasets de ejemplo.
func (p Pattern) Preset() int {
	if n, ok := patternPresets[p]; ok {
		return n
	}
	return 20
}

func (p Pattern) spacing() spacing {
	if s, ok := patternSpacing[p]; ok {
		return s
	}
	return spacing{center: 1}
}

func (p Pattern) String() string { return string(p) }
