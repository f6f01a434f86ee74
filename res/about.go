package res

// AboutContent contains the Markdown content for the About dialog.
// This is maintained separately for easy updates.
const AboutContent = `An animated field of damped waves, each carrying a glowing particle.

**Variants:**
- Peaked: cosine curves that share a crest at the left edge, particles sweep across with fading trails
- Exponential: staggered sine curves drifting sideways, particles swing back and forth

Settings are remembered between runs. Presets are YAML files, see the presets directory.
`
