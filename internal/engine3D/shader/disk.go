package shader

const diskVertex = `
in vec3 vertexPosition;
in vec2 vertexTexCoord;

uniform mat4 mvp;

out vec2 vLocal;

void main() {
    vLocal = vertexPosition.xz;
    gl_Position = mvp * vec4(vertexPosition, 1.0);
}
`

const diskFragment = `
in vec2 vLocal;

uniform float uTime;
uniform float uBrightness;
uniform float uTemperature;
uniform float uModeBlend;

out vec4 finalColor;

vec3 permute(vec3 x) {
    return mod(((x * 34.0) + 1.0) * x, 289.0);
}

float snoise(vec2 v) {
    const vec4 C = vec4(0.211324865405187, 0.366025403784439, -0.577350269189626, 0.024390243902439);
    vec2 i = floor(v + dot(v, C.yy));
    vec2 x0 = v - i + dot(i, C.xx);
    vec2 i1 = (x0.x > x0.y) ? vec2(1.0, 0.0) : vec2(0.0, 1.0);
    vec4 x12 = x0.xyxy + C.xxzz;
    x12.xy -= i1;
    i = mod(i, 289.0);
    vec3 p = permute(permute(i.y + vec3(0.0, i1.y, 1.0)) + i.x + vec3(0.0, i1.x, 1.0));
    vec3 m = max(0.5 - vec3(dot(x0, x0), dot(x12.xy, x12.xy), dot(x12.zw, x12.zw)), 0.0);
    m = m * m;
    m = m * m;
    vec3 x = 2.0 * fract(p * C.www) - 1.0;
    vec3 h = abs(x) - 0.5;
    vec3 ox = floor(x + 0.5);
    vec3 a0 = x - ox;
    m *= 1.79284291400159 - 0.85373472095314 * (a0 * a0 + h * h);
    vec3 g;
    g.x = a0.x * x0.x + h.x * x0.y;
    g.yz = a0.yz * x12.xz + h.yz * x12.yw;
    return 130.0 * dot(m, g);
}

mat2 rotate(float a) {
    float c = cos(a);
    float s = sin(a);
    return mat2(c, -s, s, c);
}

vec3 bands(vec3 inner, vec3 mid, vec3 outer, float t) {
    return mix(mix(inner, mid, smoothstep(0.0, 0.35, t)), outer, smoothstep(0.35, 1.0, t));
}

void main() {
    float r = length(vLocal);
    if (r < DISK_INNER || r > DISK_OUTER) discard;
    float t = (r - DISK_INNER) / (DISK_OUTER - DISK_INNER);

    // Inner radii rotate faster; noise is sampled in the co-rotating frame.
    float spin = uTime * DISK_SPIN / pow(t + 0.25, 1.5);
    vec2 p = rotate(spin) * vLocal;
    float coarse = 0.5 + 0.5 * snoise(p * DISK_NOISE_SCALE + vec2(0.0, uTime * 0.02));
    float fine = 0.5 + 0.5 * snoise(p * DISK_NOISE_SCALE * 3.1 + vec2(uTime * 0.05, 0.0));
    // The product of two [0,1] layers averages about 0.25; doubled before
    // the power so the streaks keep their brightness.
    float streaks = pow(saturate(coarse * fine * 2.0), DISK_STREAK_POWER);

    vec3 warm = bands(DISK_WARM_INNER, DISK_WARM_MID, DISK_WARM_OUTER, t);
    vec3 cool = bands(DISK_COOL_INNER, DISK_COOL_MID, DISK_COOL_OUTER, t);
    vec3 color = mix(warm, cool, uModeBlend);

    float doppler = 1.0 + DISK_DOPPLER * sin(atan(vLocal.y, vLocal.x));
    float innerGlow = exp(-t * DISK_GLOW_FALLOFF) * DISK_GLOW;
    float edge = smoothstep(0.0, 0.04, t) * (1.0 - smoothstep(0.65, 1.0, t));
    float intensity = (streaks + innerGlow) * doppler * edge * uBrightness * uTemperature;

    finalColor = vec4(color * intensity, saturate(intensity));
}
`

// Disk is the flat accretion ring drawn in the equatorial plane.
func Disk(defs Defines) Source {
	return build(NameDisk, diskVertex, diskFragment, defs)
}
