package shader

// Hook names exposed by StandardProgram
const (
	HookDefaultNormalVertex = "defaultnormal_vertex"
	HookMapFragment         = "map_fragment"
	HookLightsFragment      = "lights_fragment"
)

const standardVertex = `#version 300 es
precision highp float;

uniform mat4 modelMatrix;
uniform mat4 modelViewMatrix;
uniform mat4 projectionMatrix;
uniform mat3 normalMatrix;

in vec3 position;
in vec3 normal;

out vec3 vViewPosition;
out vec3 vNormal;
out vec3 vWorldPosition;
#define varying out
// @hook declarations

void main() {
	vec3 objectNormal = normal;
// @hook defaultnormal_vertex
	vNormal = normalize(normalMatrix * objectNormal);

	vec4 mvPosition = modelViewMatrix * vec4(position, 1.0);
	vViewPosition = -mvPosition.xyz;
	vWorldPosition = (modelMatrix * vec4(position, 1.0)).xyz;
	gl_Position = projectionMatrix * mvPosition;
}
`

const standardFragment = `#version 300 es
precision highp float;

#define MAX_DIR_LIGHTS 2

uniform vec3 diffuse;
uniform float roughness;
uniform float metalness;
uniform vec3 ambientLightColor;
uniform vec3 hemisphereSkyColor;
uniform vec3 hemisphereGroundColor;
uniform vec3 hemisphereDirection;
uniform vec3 directionalLightDirection[MAX_DIR_LIGHTS];
uniform vec3 directionalLightColor[MAX_DIR_LIGHTS];
uniform float directionalShadow[MAX_DIR_LIGHTS];

in vec3 vViewPosition;
in vec3 vNormal;
in vec3 vWorldPosition;
out vec4 fragColor;
#define varying in
#define texture2D texture
// @hook declarations

void main() {
	vec4 diffuseColor = vec4(diffuse, 1.0);
// @hook map_fragment

	vec3 normal = normalize(vNormal);
	vec3 viewDir = normalize(vViewPosition);
	float shininess = max(2.0 / pow(roughness, 4.0) - 2.0, 1.0);
	vec3 specularColor = mix(vec3(0.04), diffuseColor.rgb, metalness);
	vec3 albedo = diffuseColor.rgb * (1.0 - metalness);

	float hemi = 0.5 * dot(normal, hemisphereDirection) + 0.5;
	vec3 irradiance = ambientLightColor + mix(hemisphereGroundColor, hemisphereSkyColor, hemi);
	vec3 specular = vec3(0.0);
// @hook lights_fragment
	for (int i = 0; i < MAX_DIR_LIGHTS; i++) {
		vec3 l = directionalLightDirection[i];
		float nl = max(dot(normal, l), 0.0) * directionalShadow[i];
		irradiance += directionalLightColor[i] * nl;
		vec3 h = normalize(l + viewDir);
		specular += directionalLightColor[i] * specularColor * pow(max(dot(normal, h), 0.0), shininess) * nl;
	}

	fragColor = vec4(clamp(albedo * irradiance + specular, 0.0, 1.0), diffuseColor.a);
}
`

// StandardProgram returns the base lit material program with the
// declarations, defaultnormal_vertex, map_fragment and lights_fragment hooks.
func StandardProgram() Program {
	return Program{
		Name:     "standard",
		Vertex:   standardVertex,
		Fragment: standardFragment,
	}
}

const matcapVertexSnippet = `e = normalize( vec3( modelViewMatrix * vec4( position, 1.0 ) ) );
n = normalize( normalMatrix * normal );`

const matcapFragmentSnippet = `vec3 r = reflect( e, n );
float m = 2.82842712474619 * sqrt( r.z+1.0 );
vec2 vN = r.xy / m + .5;

float rim = max( 0., abs( dot( normalize( vNormal ), normalize( -vViewPosition ) ) ) );
rim = smoothstep( .25, .75, 1. - rim );

diffuseColor.rgb = texture2D(matCap, vN).rgb;
diffuseColor.rgb += vec3(.5*rim);`

// MatcapVariant replaces the diffuse color with a matcap lookup indexed by
// the view-space reflection vector and adds a soft rim term.
func MatcapVariant() Variant {
	return Variant{
		Name: "matcap",
		Uniforms: []Declaration{
			{Name: "time", Type: "float"},
			{Name: "matCap", Type: "sampler2D"},
		},
		Varyings: []Declaration{
			{Name: "e", Type: "vec3"},
			{Name: "n", Type: "vec3"},
		},
		Injections: []Injection{
			{Stage: Vertex, Hook: HookDefaultNormalVertex, Mode: After, Snippet: matcapVertexSnippet},
			{Stage: Fragment, Hook: HookMapFragment, Mode: After, Snippet: matcapFragmentSnippet},
		},
	}
}
