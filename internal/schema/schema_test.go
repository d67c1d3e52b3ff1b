package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateWorldDocument_AcceptsMinimalWorld(t *testing.T) {
	doc := []byte(`{"id":"w1","entities":[{"id":"a","mass":{"value":1},"state":{}}],"dynamics":[{"ref":"rg:law/x"}]}`)
	assert.NoError(t, ValidateWorldDocument(doc))
}

func TestValidateWorldDocument_RejectsMissingEntities(t *testing.T) {
	doc := []byte(`{"id":"w1","dynamics":[]}`)
	assert.Error(t, ValidateWorldDocument(doc))
}

func TestValidateWorldDocument_RejectsMalformedJSON(t *testing.T) {
	assert.Error(t, ValidateWorldDocument([]byte(`{not json`)))
}

func TestValidateLawCardDocument_AcceptsMinimalCard(t *testing.T) {
	doc := []byte(`{"id":"rg:law/x","parameters":{}}`)
	assert.NoError(t, ValidateLawCardDocument(doc))
}

func TestValidateLawCardDocument_RejectsMissingID(t *testing.T) {
	doc := []byte(`{"parameters":{}}`)
	assert.Error(t, ValidateLawCardDocument(doc))
}
