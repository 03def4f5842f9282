package shader

// Uniform names shared by the programs and the code that feeds them.
const (
	UniformTime          = "uTime"
	UniformTemperature   = "uTemperature"
	UniformModeBlend     = "uModeBlend"
	UniformPointScale    = "uPointScale"
	UniformBrightness    = "uBrightness"
	UniformStrength      = "uStrength"
	UniformResolution    = "uResolution"
	UniformThreshold     = "uThreshold"
	UniformDirection     = "uDirection"
	UniformTexelSize     = "uTexelSize"
	UniformBloomTexture  = "uBloomTexture"
	UniformBloomStrength = "uBloomStrength"
	UniformExposure      = "uExposure"
)

// Program names, also used as resource names.
const (
	NameDebris      = "debris"
	NameDisk        = "disk"
	NameLensing     = "lensing"
	NameStarfield   = "starfield"
	NameBloomBright = "bloom-bright"
	NameBloomBlur   = "bloom-blur"
	NameOutput      = "output"
)
