package app

import (
	"context"

	cryptoService "github.com/radarone/vault/internal/crypto/service"
)

// KMSService returns the KMS service used to unwrap PII_ENCRYPTION_KEY when KMS_KEY_URI is set.
func (c *Container) KMSService() cryptoService.KMSService {
	c.kmsServiceInit.Do(func() {
		c.kmsService = cryptoService.NewKMSService()
	})
	return c.kmsService
}

// FieldCipher returns the process-wide field cipher shared by national ids and sessions.
//
// The key is resolved on the first Seal or Open, not here: a missing or malformed key fails
// that operation and every later one, while the process keeps serving requests that do not
// touch encrypted fields. A failed KMS unwrap is retried by the next operation.
func (c *Container) FieldCipher() cryptoService.FieldCipher {
	c.fieldCipherInit.Do(func() {
		c.fieldCipher = c.initFieldCipher()
	})
	return c.fieldCipher
}

func (c *Container) initFieldCipher() cryptoService.FieldCipher {
	var kmsService cryptoService.KMSService
	if c.config.KMSKeyURI != "" {
		kmsService = c.KMSService()
	}

	loader := cryptoService.NewKeyLoader(kmsService, c.config.KMSKeyURI, c.config.PIIEncryptionKey)
	return cryptoService.NewLazyFieldCipher(loader.CipherLoader(context.Background()))
}
