package vault

import (
	"fmt"

	"github.com/monarch-initiative/kozahub-dashboard/config"

	"github.com/hashicorp/vault/api"
)

// Token reads the GitHub token from Vault. Authentication is either a
// static vault token or an AppRole login when role_id/secret_id are set.
func Token(conf *config.Vault) (string, error) {
	client, err := api.NewClient(&api.Config{Address: conf.VaultURL})
	if err != nil {
		return "", fmt.Errorf("can't create vault client: %v", err)
	}
	if conf.Token != "" {
		client.SetToken(conf.Token)
	} else {
		if err := appRoleLogin(client, conf); err != nil {
			return "", err
		}
	}

	secret, err := client.Logical().Read(conf.Path)
	if err != nil {
		return "", fmt.Errorf("can't read %s: %v", conf.Path, err)
	}
	if secret == nil || secret.Data == nil {
		return "", fmt.Errorf("no secret at %s", conf.Path)
	}

	data := secret.Data
	// kv v2 nests the payload under "data"
	if nested, ok := data["data"].(map[string]interface{}); ok {
		data = nested
	}
	token, ok := data[conf.Key].(string)
	if !ok || token == "" {
		return "", fmt.Errorf("no %q key in secret at %s", conf.Key, conf.Path)
	}
	return token, nil
}

func appRoleLogin(client *api.Client, conf *config.Vault) error {
	secret, err := client.Logical().Write("auth/approle/login", map[string]interface{}{
		"role_id":   conf.RoleID,
		"secret_id": conf.SecretID,
	})
	if err != nil {
		return fmt.Errorf("approle login failed: %v", err)
	}
	if secret == nil || secret.Auth == nil {
		return fmt.Errorf("approle login returned no auth")
	}
	client.SetToken(secret.Auth.ClientToken)
	return nil
}
