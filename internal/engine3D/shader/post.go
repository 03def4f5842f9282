package shader

const bloomBrightFragment = `
in vec2 fragTexCoord;
in vec4 fragColor;

uniform sampler2D texture0;
uniform float uThreshold;

out vec4 finalColor;

void main() {
    vec3 color = texture(texture0, fragTexCoord).rgb;
    float luma = dot(color, vec3(0.2126, 0.7152, 0.0722));
    float keep = smoothstep(uThreshold, uThreshold + BLOOM_KNEE, luma);
    finalColor = vec4(color * keep, 1.0);
}
`

const bloomBlurFragment = `
in vec2 fragTexCoord;
in vec4 fragColor;

uniform sampler2D texture0;
uniform vec2 uDirection;
uniform vec2 uTexelSize;

out vec4 finalColor;

const float WEIGHTS[5] = float[](0.227027, 0.1945946, 0.1216216, 0.054054, 0.016216);

void main() {
    vec2 offset = uDirection * uTexelSize * BLUR_SPREAD;
    vec3 color = texture(texture0, fragTexCoord).rgb * WEIGHTS[0];
    for (int i = 1; i < 5; i++) {
        color += texture(texture0, fragTexCoord + offset * float(i)).rgb * WEIGHTS[i];
        color += texture(texture0, fragTexCoord - offset * float(i)).rgb * WEIGHTS[i];
    }
    finalColor = vec4(color, 1.0);
}
`

const outputFragment = `
in vec2 fragTexCoord;
in vec4 fragColor;

uniform sampler2D texture0;
uniform sampler2D uBloomTexture;
uniform float uBloomStrength;
uniform float uExposure;

out vec4 finalColor;

vec3 aces(vec3 x) {
    const float a = 2.51;
    const float b = 0.03;
    const float c = 2.43;
    const float d = 0.59;
    const float e = 0.14;
    return saturate((x * (a * x + b)) / (x * (c * x + d) + e));
}

void main() {
    vec3 scene = texture(texture0, fragTexCoord).rgb;
    vec3 bloom = texture(uBloomTexture, fragTexCoord).rgb;
    vec3 color = aces((scene + bloom * uBloomStrength) * uExposure);
    finalColor = vec4(pow(color, vec3(1.0 / GAMMA)), 1.0);
}
`

// BloomBright keeps only pixels brighter than uThreshold.
func BloomBright(defs Defines) Source {
	return build(NameBloomBright, FullscreenVertex, bloomBrightFragment, defs)
}

// BloomBlur is one direction of a separable gaussian; uDirection picks the axis.
func BloomBlur(defs Defines) Source {
	return build(NameBloomBlur, FullscreenVertex, bloomBlurFragment, defs)
}

// Output composites bloom over the scene and tone-maps to display range.
func Output(defs Defines) Source {
	return build(NameOutput, FullscreenVertex, outputFragment, defs)
}
