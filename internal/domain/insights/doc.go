// Package insights contiene la lógica pura de la analítica del dashboard:
// cortes de calendario (día, semana ISO, mes), relleno de huecos de series,
// márgenes, claves de métricas y clasificación de productos que requieren atención.
//
// Nada aquí toca la base de datos; todo es aritmética sobre fechas y decimales
// para poder probarse sin infraestructura.
package insights
