//go:build !gcloud

package config

// Validate enforces nothing for the self-hosted queue: an unset
// ALERT_TASKS_URL disables alert dispatch rather than failing startup.
func (c *AlertQueueConfig) Validate() error {
	return nil
}
