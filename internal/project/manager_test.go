package project

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-reviewer/internal/config"
)

var fixedTime = time.Date(2024, 3, 15, 9, 30, 45, 123000000, time.UTC)

func newTestManager(t *testing.T, opts ...Option) *Manager {
	t.Helper()
	cfg := &config.Config{ProjectRoot: t.TempDir()}
	opts = append([]Option{WithClock(func() time.Time { return fixedTime })}, opts...)
	return NewManager(cfg, opts...)
}

func TestInit_EmptyRoot(t *testing.T) {
	m := newTestManager(t)
	paths := m.Paths()

	result, err := m.Init()
	require.NoError(t, err)

	expected := []string{
		paths.People,
		paths.Companies,
		paths.Results,
		paths.Templates,
		filepath.Join(paths.Templates, PersonTemplateFile),
		filepath.Join(paths.Templates, CompanyTemplateFile),
		filepath.Join(paths.Templates, JobTemplateFile),
		config.FilePath(m.Config()),
	}
	assert.Equal(t, expected, result.Created)
	assert.Empty(t, result.Existed)

	for _, dir := range expected[:4] {
		assert.DirExists(t, dir)
	}
	for _, file := range expected[4:] {
		assert.FileExists(t, file)
	}

	loaded, err := config.LoadFile(config.FilePath(m.Config()))
	require.NoError(t, err)
	assert.Equal(t, m.Config().ProjectRoot, loaded.ProjectRoot)
}

func TestInit_SecondCallIsNoop(t *testing.T) {
	m := newTestManager(t)

	first, err := m.Init()
	require.NoError(t, err)

	second, err := m.Init()
	require.NoError(t, err)

	assert.Empty(t, second.Created)
	assert.Equal(t, first.Created, second.Existed)
}

func TestInit_PreservesCustomTemplates(t *testing.T) {
	m := newTestManager(t)
	paths := m.Paths()
	require.NoError(t, os.MkdirAll(paths.Templates, 0755))

	custom := "# Custom profile for [Name]\n"
	personTemplate := filepath.Join(paths.Templates, PersonTemplateFile)
	require.NoError(t, os.WriteFile(personTemplate, []byte(custom), 0644))

	result, err := m.Init()
	require.NoError(t, err)
	assert.Contains(t, result.Existed, paths.Templates)
	assert.Contains(t, result.Existed, personTemplate)

	data, err := os.ReadFile(personTemplate)
	require.NoError(t, err)
	assert.Equal(t, custom, string(data))

	// New people pick up the customized template.
	_, err = m.AddPerson("Jane Doe")
	require.NoError(t, err)
	content, err := m.GetPersonContent("jane-doe")
	require.NoError(t, err)
	assert.Equal(t, "# Custom profile for Jane Doe\n", content)
}

func TestInit_KeepsExistingConfigFile(t *testing.T) {
	m := newTestManager(t)
	configPath := config.FilePath(m.Config())
	original := []byte(`{"projectRoot": ".", "defaultPerson": "jane-doe"}`)
	require.NoError(t, os.WriteFile(configPath, original, 0644))

	result, err := m.Init()
	require.NoError(t, err)
	assert.Contains(t, result.Existed, configPath)

	data, err := os.ReadFile(configPath)
	require.NoError(t, err)
	assert.Equal(t, original, data)
}

func TestFillTemplate(t *testing.T) {
	out := fillTemplate("# [Name]\n[Name] works at [Company Name]",
		PlaceholderName, "Ada",
		PlaceholderCompany, "Acme",
	)
	assert.Equal(t, "# Ada\nAda works at Acme", out)
}

func TestShortID(t *testing.T) {
	id := ShortID()
	assert.Len(t, id, 8)
	assert.NotEqual(t, id, ShortID())
}
