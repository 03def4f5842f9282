package shader

// FullscreenVertex is the pass-through stage used by every fullscreen pass.
const FullscreenVertex = `
in vec3 vertexPosition;
in vec2 vertexTexCoord;
in vec4 vertexColor;

uniform mat4 mvp;

out vec2 fragTexCoord;
out vec4 fragColor;

void main() {
    fragTexCoord = vertexTexCoord;
    fragColor = vertexColor;
    gl_Position = mvp * vec4(vertexPosition, 1.0);
}
`

const lensingFragment = `
in vec2 fragTexCoord;
in vec4 fragColor;

uniform sampler2D texture0;
uniform vec2 uResolution;
uniform float uStrength;
uniform float uModeBlend;

out vec4 finalColor;

void main() {
    vec2 uv = fragTexCoord;
    float aspect = uResolution.x / max(uResolution.y, 1.0);

    vec2 d = uv - vec2(0.5);
    d.x *= aspect;
    float dist = length(d);
    vec2 dir = dist > 0.0 ? d / dist : vec2(0.0);

    float x = max(dist - SCHWARZSCHILD * LENS_K, LENS_EPSILON);
    float warp = min(uStrength * LENS_SCALE / (x * x), LENS_MAX_WARP);
    warp *= 1.0 - smoothstep(LENS_RADIUS * 0.6, LENS_RADIUS, dist);

    vec2 shift = dir * warp;
    shift.x /= aspect;

    vec3 color;
    color.r = texture(texture0, clamp(uv - shift * (1.0 + LENS_CHROMA), 0.0, 1.0)).r;
    color.g = texture(texture0, clamp(uv - shift, 0.0, 1.0)).g;
    color.b = texture(texture0, clamp(uv - shift * (1.0 - LENS_CHROMA), 0.0, 1.0)).b;

    float horizon = 1.0 - smoothstep(SCHWARZSCHILD * 0.97, SCHWARZSCHILD, dist);
    color *= 1.0 - horizon;

    float edge = abs(dist - SCHWARZSCHILD);
    float ring = (1.0 - smoothstep(0.0, RING_WIDTH, edge) + exp(-edge * RING_SHARPNESS)) * RING_INTENSITY * uStrength;
    color += mix(RING_WARM, RING_COOL, uModeBlend) * ring;

    finalColor = vec4(color, 1.0);
}
`

// Lensing warps the captured background around the screen center, blacks
// out the horizon and adds the photon ring.
func Lensing(defs Defines) Source {
	return build(NameLensing, FullscreenVertex, lensingFragment, defs)
}
