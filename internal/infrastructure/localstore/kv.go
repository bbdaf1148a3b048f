// Package localstore implementa el almacén local por colecciones: cada colección es un arreglo JSON
// guardado completo bajo una clave fija y reescrito en cada mutación.
package localstore

import "context"

// KV área clave-valor sobre la que se guardan las colecciones.
type KV interface {
	// Get devuelve el valor y false si la clave no existe.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
}
