package testutil

import "strings"

// ViteConfig is the config create-vite writes for the React templates.
const ViteConfig = `import { defineConfig } from 'vite'
import react from '@vitejs/plugin-react'

// https://vite.dev/config/
export default defineConfig({
  plugins: [react()],
})
`

// GeneratedManifest returns the package.json create-vite writes for name.
func GeneratedManifest(name string) string {
	return strings.ReplaceAll(`{
  "name": "APP",
  "private": true,
  "version": "0.0.0",
  "type": "module",
  "scripts": {
    "dev": "vite",
    "build": "vite build",
    "lint": "eslint .",
    "preview": "vite preview"
  },
  "dependencies": {
    "react": "^19.1.0",
    "react-dom": "^19.1.0"
  },
  "devDependencies": {
    "@vitejs/plugin-react": "^4.6.0",
    "vite": "^7.0.4"
  }
}
`, "APP", name)
}
