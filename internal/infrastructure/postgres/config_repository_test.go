package postgres

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/corretor-landing-api/internal/domain/entity"
)

// fakeRow simula pgx.Row copiando valores en los destinos de Scan.
type fakeRow struct {
	values []any
}

func (r fakeRow) Scan(dest ...any) error {
	for i, d := range dest {
		switch p := d.(type) {
		case *string:
			*p = r.values[i].(string)
		case **string:
			if v, ok := r.values[i].(string); ok {
				*p = &v
			}
		case *[]byte:
			if v, ok := r.values[i].(string); ok {
				*p = []byte(v)
			}
		case **int:
			if v, ok := r.values[i].(int); ok {
				*p = &v
			}
		case *time.Time:
			*p = r.values[i].(time.Time)
		case *bool:
			*p = r.values[i].(bool)
		}
	}
	return nil
}

func configRow(badges, form any, pages any) fakeRow {
	now := time.Now()
	return fakeRow{values: []any{
		"c1", "modern-template", "Ana", nil, "5511999999999", nil, nil,
		nil, nil, nil, nil, "Olá", nil, nil, nil,
		badges, form, pages, now, now, true,
	}}
}

func TestScanConfig_NulosSonOverridesAusentes(t *testing.T) {
	rec, created, err := scanConfig(configRow(nil, nil, nil))
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "Ana", *rec.Nome)
	assert.Nil(t, rec.Creci)
	assert.Nil(t, rec.Badges)
	assert.Nil(t, rec.LeadForm)
	assert.Nil(t, rec.LandingPages)
}

func TestScanConfig_DecodificaJSONB(t *testing.T) {
	rec, _, err := scanConfig(configRow(
		`[]`,
		`{"renda":{"visivel":true,"obrigatorio":true}}`,
		3,
	))
	require.NoError(t, err)
	require.NotNil(t, rec.Badges)
	assert.Empty(t, rec.Badges, "lista vacía guardada se distingue de ausente")
	require.NotNil(t, rec.LeadForm)
	assert.True(t, rec.LeadForm.Renda.Obrigatorio, "formulario versión 0 migrado al leer")
	assert.Equal(t, 3, *rec.LandingPages)
}

func TestScanConfig_FormConfigCorrupto(t *testing.T) {
	_, _, err := scanConfig(configRow(nil, `{"version":9}`, nil))
	assert.Error(t, err)
}

func TestJSONParam(t *testing.T) {
	v, err := jsonParam(false, nil)
	require.NoError(t, err)
	assert.Nil(t, v)

	v, err = jsonParam(true, []entity.Badge{})
	require.NoError(t, err)
	assert.Equal(t, "[]", v)

	v, err = jsonParam(true, &entity.LeadFormSchema{Objetivo: entity.LeadFormField{Visivel: true}})
	require.NoError(t, err)
	assert.JSONEq(t, `{"version":1,"campos":{"renda":{"visivel":false,"obrigatorio":false},"objetivo":{"visivel":true,"obrigatorio":false},"entrada":{"visivel":false,"obrigatorio":false}}}`, v.(string))
}
