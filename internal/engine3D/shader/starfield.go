package shader

// Point attributes:
//
//	vertexPosition  = position on the star shell
//	vertexTexCoord  = (size, baseOpacity)
//	vertexTexCoord2 = (twinkleSpeed, twinklePhase)
//	vertexColor     = tint
const starfieldVertex = `
in vec3 vertexPosition;
in vec2 vertexTexCoord;
in vec2 vertexTexCoord2;
in vec4 vertexColor;

uniform mat4 mvp;
uniform mat4 matView;
uniform mat4 matModel;
uniform float uTime;
uniform float uPointScale;

out vec3 vTint;
out float vOpacity;

void main() {
    float size = vertexTexCoord.x;
    float baseOpacity = vertexTexCoord.y;
    float speed = vertexTexCoord2.x;
    float phase = vertexTexCoord2.y;

    float twinkle = 0.5 + 0.3 * sin(uTime * speed + phase)
        + 0.2 * sin(uTime * speed * TWINKLE_RATIO + phase * 2.3);
    twinkle = smoothstep(TWINKLE_FLOOR, 1.0, twinkle);

    vTint = vertexColor.rgb;
    vOpacity = baseOpacity * mix(TWINKLE_MIN, 1.0, twinkle);

    vec4 eye = matView * matModel * vec4(vertexPosition, 1.0);
    gl_PointSize = size * mix(0.7, 1.0, twinkle) * STAR_SIZE * uPointScale / max(-eye.z, 1.0);
    gl_Position = mvp * vec4(vertexPosition, 1.0);
}
`

const starfieldFragment = `
in vec3 vTint;
in float vOpacity;

out vec4 finalColor;

void main() {
    float d = length(gl_PointCoord - vec2(0.5)) * 2.0;
    if (d > 1.0) discard;

    float core = exp(-d * d * 6.0);
    float alpha = core * vOpacity;
    finalColor = vec4(vTint * alpha, alpha);
}
`

// Starfield draws the distant twinkling stars. uTime here is wall-clock
// elapsed time and is not affected by the rotation speed.
func Starfield(defs Defines) Source {
	return build(NameStarfield, starfieldVertex, starfieldFragment, defs)
}
