package config

// Tc for k = J = 1.
const onsagerTc = 2.269185314213022

var Presets = map[string]map[string]*Config{
	"metropolis": {
		"ordered": {
			Algorithm: "metropolis", Size: 32, K: 1, J: 1, T: 1.0, Iterations: 500, Burnin: 100,
		},
		"critical": {
			Algorithm: "metropolis", Size: 64, K: 1, J: 1, T: onsagerTc, Iterations: 5000, Burnin: 1000,
		},
		"disordered": {
			Algorithm: "metropolis", Size: 32, K: 1, J: 1, T: 5.0, Iterations: 500, Burnin: 50,
		},
		"quench": {
			Algorithm: "metropolis", Size: 64, K: 1, J: 1, T: 0.1, Iterations: 200,
		},
	},
	"wolff": {
		"ordered": {
			Algorithm: "wolff", Size: 32, K: 1, J: 1, T: 1.0, Iterations: 500, Burnin: 50,
		},
		"critical": {
			Algorithm: "wolff", Size: 128, K: 1, J: 1, T: onsagerTc, Iterations: 10000, Burnin: 500,
		},
		"disordered": {
			Algorithm: "wolff", Size: 32, K: 1, J: 1, T: 5.0, Iterations: 2000, Burnin: 100,
		},
	},
}

func GetPreset(algorithm, preset string) *Config {
	algPresets, ok := Presets[algorithm]
	if !ok {
		return nil
	}
	cfg, ok := algPresets[preset]
	if !ok {
		return nil
	}
	return cfg
}

func ListPresets(algorithm string) []string {
	algPresets, ok := Presets[algorithm]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(algPresets))
	for name := range algPresets {
		names = append(names, name)
	}
	return names
}
