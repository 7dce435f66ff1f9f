package env

import "testing"

func TestIsProduction_Default(t *testing.T) {
	t.Setenv("DOCUSAURUS_ENV", "")
	t.Setenv("NODE_ENV", "")

	if IsProduction() {
		t.Error("Expected development mode with no environment set")
	}
}

func TestIsProduction_NodeEnv(t *testing.T) {
	t.Setenv("DOCUSAURUS_ENV", "")
	t.Setenv("NODE_ENV", "production")

	if !IsProduction() {
		t.Error("Expected production mode via NODE_ENV")
	}
}

func TestIsProduction_DocusaurusEnvWins(t *testing.T) {
	t.Setenv("DOCUSAURUS_ENV", "development")
	t.Setenv("NODE_ENV", "production")

	if IsProduction() {
		t.Error("Expected DOCUSAURUS_ENV to override NODE_ENV")
	}
}
