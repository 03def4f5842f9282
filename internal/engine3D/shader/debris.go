package shader

// Point attributes:
//
//	vertexPosition  = (startRadius, initialAngle, verticalOffsetSeed)
//	vertexTexCoord  = (scale, speedModifier)
//	vertexTexCoord2 = (clumpId, unused)
//	vertexColor     = base color
const debrisVertex = `
in vec3 vertexPosition;
in vec2 vertexTexCoord;
in vec2 vertexTexCoord2;
in vec4 vertexColor;

uniform mat4 mvp;
uniform mat4 matView;
uniform mat4 matModel;
uniform float uTime;
uniform float uTemperature;
uniform float uModeBlend;
uniform float uPointScale;

out vec3 vColor;
out float vBrightness;
out float vAlpha;

float wrapRadius(float startRadius, float drift) {
    float band = OUTER_EDGE - HORIZON;
    float r = HORIZON + mod(startRadius - HORIZON - drift, band);
    return r >= OUTER_EDGE ? HORIZON : r;
}

vec3 palette(vec3 inner, vec3 mid, vec3 outer, float r) {
    vec3 c = mix(inner, mid, smoothstep(INNER_BAND * 0.6, INNER_BAND, r));
    return mix(c, outer, smoothstep(INNER_BAND, MID_BAND, r));
}

void main() {
    float startRadius = vertexPosition.x;
    float initialAngle = vertexPosition.y;
    float verticalSeed = vertexPosition.z;
    float scale = vertexTexCoord.x;
    float speedModifier = vertexTexCoord.y;
    float clump = vertexTexCoord2.x;

    float clumpNoise = 1.0 + CLUMP_NOISE * sin(clump * 1.7 + uTime * 0.1);
    float decay = DECAY_K / (startRadius + DECAY_C) * speedModifier * clumpNoise;
    float r = wrapRadius(startRadius, decay * uTime);

    float omega = ANGULAR_K / pow(r, 1.5);
    float turbulence = 1.0 + TURBULENCE * sin(uTime * 0.5 + initialAngle * 3.0);
    float jitter = CLUMP_JITTER * sin(clump * 12.9898 + uTime * 0.3);
    float angle = initialAngle + omega * uTime * turbulence + jitter;

    float thickness = THICKNESS_BASE + THICKNESS_SLOPE * r;
    float warp = WARP_AMP * sin(angle * 2.0 + uTime * 0.2) * (r / OUTER_EDGE);
    vec3 position = vec3(cos(angle) * r, verticalSeed * thickness + warp, sin(angle) * r);

    float fade = smoothstep(HORIZON, HORIZON + FADE_BAND, r)
        * (1.0 - smoothstep(OUTER_EDGE - EDGE_BAND, OUTER_EDGE, r));
    float doppler = 1.0 + DOPPLER * sin(angle + DOPPLER_PHASE);
    float pulse = 1.0 + CLUMP_PULSE * sin(clump * 3.0 + uTime * 2.0);

    vec3 warm = palette(WARM_INNER, WARM_MID, WARM_OUTER, r);
    vec3 cool = palette(COOL_INNER, COOL_MID, COOL_OUTER, r);
    vColor = mix(warm, cool, uModeBlend) * mix(vec3(1.0), vertexColor.rgb, BASE_TINT);
    vBrightness = BRIGHTNESS_K / (1.0 + r * r * BRIGHTNESS_FALLOFF) * uTemperature * doppler * pulse;
    vAlpha = fade;

    vec4 eye = matView * matModel * vec4(position, 1.0);
    gl_PointSize = scale * POINT_SIZE * uPointScale / max(-eye.z, 0.1);
    gl_Position = mvp * vec4(position, 1.0);
}
`

const debrisFragment = `
in vec3 vColor;
in float vBrightness;
in float vAlpha;

out vec4 finalColor;

void main() {
    float d = length(gl_PointCoord - vec2(0.5)) * 2.0;
    if (d > 1.0) discard;

    float glow = pow(1.0 - d, GLOW_POWER);
    vec3 color = mix(vColor, vec3(1.0), smoothstep(1.2, 3.0, vBrightness) * 0.6);
    float alpha = glow * vAlpha;
    finalColor = vec4(color * vBrightness * alpha, alpha);
}
`

// Debris is the orbiting particle program. Positions are derived entirely on
// the GPU from the per-point seeds and uTime.
func Debris(defs Defines) Source {
	return build(NameDebris, debrisVertex, debrisFragment, defs)
}
