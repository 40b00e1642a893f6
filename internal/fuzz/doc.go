// Package fuzztests houses Go fuzz harnesses for the compilation pipeline.
//
// Назначение: прогонять произвольные байты через весь конвейер и проверять,
// что он не паникует, не зависает и всегда отвечает диагностикой.
package fuzztests
