// Package mediahttp реализует HTTP-интерфейс медиа-узла: хранение картинок рецептов
// на локальном диске. Эндпоинты:
//   - PUT /files/{name...}: принимает файл во временный каталог, сверяет размер и SHA-256, затем переносит на место.
//   - GET /files/{name...}: отдаёт файл с Content-Type по расширению.
//   - HEAD /files/{name...}: размер и SHA-256 в служебных заголовках.
//   - DELETE /files/{name...}: удаляет файл.
//   - POST /admin/gc: вручную удаляет брошенные временные файлы.
//   - GET /health: суммарный объём данных узла.
package mediahttp
