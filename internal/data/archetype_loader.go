package data

import (
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadArchetypeOverrides applies tuning overrides from a YAML file on top of the
// built-in archetype table. Only keys present in the file are changed.
// A missing file is not an error.
//
// File shape:
//
//	warrior:
//	  base: {max_health: 180}
//	  dash: {stamina_cost: 20, duration: 250ms}
//	  skills:
//	    - id: cleave
//	      damage: 55
func LoadArchetypeOverrides(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading archetype overrides %s: %w", path, err)
	}
	return ApplyArchetypeOverrides(raw)
}

// ApplyArchetypeOverrides merges YAML overrides into the archetype table.
// On error the table is left unchanged.
func ApplyArchetypeOverrides(raw []byte) error {
	var doc map[Class]yaml.Node
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("parsing archetype overrides: %w", err)
	}

	next := make(map[Class]*ArchetypeDefinition, len(archetypeTable))
	for c, def := range archetypeTable {
		cp := *def
		next[c] = &cp
	}

	for class, node := range doc {
		def, ok := next[class]
		if !ok {
			return fmt.Errorf("archetype overrides: unknown class %q", class)
		}
		if err := applyOverride(def, &node); err != nil {
			return fmt.Errorf("archetype overrides for %s: %w", class, err)
		}
		if err := validateArchetype(def); err != nil {
			return fmt.Errorf("archetype overrides for %s: %w", class, err)
		}
		slog.Info("archetype tuning overridden", "class", class)
	}

	archetypeTable = next
	return nil
}

func applyOverride(def *ArchetypeDefinition, node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("expected mapping, got yaml kind %d", node.Kind)
	}

	// Split the skills list off; everything else decodes straight into def.
	fields := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	var skills *yaml.Node
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, val := node.Content[i], node.Content[i+1]
		if key.Value == "skills" {
			skills = val
			continue
		}
		fields.Content = append(fields.Content, key, val)
	}

	if err := fields.Decode(def); err != nil {
		return err
	}
	if skills == nil {
		return nil
	}

	def.Skills = append([]SkillDescriptor(nil), def.Skills...)
	for _, item := range skills.Content {
		var ref struct {
			ID string `yaml:"id"`
		}
		if err := item.Decode(&ref); err != nil {
			return err
		}
		idx := -1
		for i := range def.Skills {
			if def.Skills[i].ID == ref.ID {
				idx = i
				break
			}
		}
		if idx < 0 {
			return fmt.Errorf("unknown skill %q", ref.ID)
		}
		if err := item.Decode(&def.Skills[idx]); err != nil {
			return fmt.Errorf("skill %s: %w", ref.ID, err)
		}
	}
	return nil
}

func validateArchetype(def *ArchetypeDefinition) error {
	switch {
	case def.Base.MaxHealth <= 0:
		return fmt.Errorf("max_health must be positive")
	case def.Base.MaxStamina <= 0:
		return fmt.Errorf("max_stamina must be positive")
	case def.Base.Speed < 0, def.Base.StaminaRegen < 0:
		return fmt.Errorf("speed and stamina_regen must not be negative")
	case def.Dash.StaminaCost < 0, def.Dash.Duration < 0, def.Dash.Cooldown < 0:
		return fmt.Errorf("dash tuning must not be negative")
	case def.CritChance < 0 || def.CritChance > 1:
		return fmt.Errorf("crit_chance %v out of [0,1]", def.CritChance)
	case def.CritMultiplier < 1:
		return fmt.Errorf("crit_multiplier must be at least 1")
	}
	for _, s := range def.Skills {
		if s.StaminaCost < 0 || s.Cooldown < 0 {
			return fmt.Errorf("skill %s: cost and cooldown must not be negative", s.ID)
		}
	}
	return nil
}
