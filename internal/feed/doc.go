// Package feed une el catálogo de productos y el almacén de medios en una sola
// secuencia ordenada de FeedItem.
//
// Por cada página:
//  1. Se piden pageSize productos al catálogo con offset pageIndex*pageSize.
//  2. Se hace una única consulta en lote al almacén de medios por esos IDs.
//  3. Cada producto emite, en orden de catálogo: su item principal (imagen del CMS, o
//     la miniatura del catálogo si el CMS no tiene registro) y luego un item por cada
//     imagen suplementaria.
//
// Los IDs de item son estables entre páginas: "{productID}_hero" y
// "{productID}_wear_{i}", donde i es la posición en el arreglo original del CMS.
package feed
