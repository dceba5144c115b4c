package asset

// DefaultSceneName labels snapshots taken from DefaultScene
const DefaultSceneName = "tilt"

// DefaultScene returns the built-in level TOML used when no scene file is given
const DefaultScene = `
name = "tilt"

# === World tunables ===
[physics]
gravity = 10.0
friction = 0.98
max_speed = 20.0
restitution = 1.0

# === Static planes ===

# Tiltable floor
[[plane]]
normal = [0.0, 1.0, 0.0]
offset = 0.0
control = true

# Side walls keep bodies on the board
[[plane]]
normal = [1.0, 0.0, 0.0]
offset = -8.0

[[plane]]
normal = [-1.0, 0.0, 0.0]
offset = -8.0

# === Dynamic bodies ===

[[sphere]]
center = [-4.0, 3.0, 0.0]
radius = 0.5
mass = 1.0
velocity = [2.0, 0.0, 0.0]
omega = [0.0, 0.0, -4.0]

[[sphere]]
center = [1.0, 5.0, 0.0]
radius = 0.4
mass = 0.5

[[sphere]]
center = [3.0, 1.0, 0.0]
radius = 0.7
mass = 2.0
velocity = [-1.0, 0.0, 0.0]

# === Goal ===

[[goal]]
center = [6.5, 0.6, 0.0]
radius = 0.6
`
