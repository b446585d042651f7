package skills

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInventoryLexiconSkillsInJDOrder(t *testing.T) {
	inv := NewInventory("", "We need Golang and Kubernetes experience; Docker is a plus.", 5)
	assert.Equal(t, []string{"go", "kubernetes", "docker"}, inv.LexiconSkills)
}

func TestInventoryFallsBackToRequirementPhrases(t *testing.T) {
	inv := NewInventory("", "Looking for experience with quantum annealing, knowledge of lattice theory.", 5)
	assert.Equal(t, []string{"quantum annealing", "lattice theory"}, inv.LexiconSkills)
}

func TestInventorySoftSkills(t *testing.T) {
	inv := NewInventory("Strong leadership and communication; led cross-functional teams", "x", 5)
	assert.Equal(t, []string{"communication", "cross-functional", "leadership"}, inv.SoftSkills)
}

func TestCanonical(t *testing.T) {
	assert.Equal(t, "go", Canonical(" Golang "))
	assert.Equal(t, "kubernetes", Canonical("K8S"))
	assert.Equal(t, "node.js", Canonical("NodeJS"))
	assert.Equal(t, "project management", Canonical("Project   Management"))
	assert.Equal(t, CategorySoft, CategoryOf("leadership"))
	assert.Equal(t, CategoryHard, CategoryOf("go"))
	assert.Equal(t, []string{"kubernetes", "k8s"}, Forms("k8s"))
}
