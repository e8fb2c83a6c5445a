package ports

import (
	"context"
	"io"
)

// DocumentStorage define el puerto de salida para guardar archivos
// (documentos de reservas, PDFs publicados). Devuelve la URL pública.
// Cualquier adaptador (S3, disco local, mock) debe implementar esta interfaz.
type DocumentStorage interface {
	// Put guarda size bytes de body bajo key. El contexto debe llevar un
	// timeout: la subida es una llamada de red.
	Put(ctx context.Context, key, contentType string, body io.Reader, size int64) (string, error)
	// Delete borra key. Borrar una key inexistente no es error.
	Delete(ctx context.Context, key string) error
}
