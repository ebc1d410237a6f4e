// Package main provides the entry point of visa-admin, the backend of the
// Rizky Provider Visa website. It serves the public visa catalog and the
// site settings as a JSON api under /api and lets signed in admins manage
// both. Country images are kept on disk or in a minio bucket, the catalog
// lives in mysql, postgres or sqlite through gorm.
package main
