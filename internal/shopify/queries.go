package shopify

// Page bounds for catalog queries. Only the first page is ever requested; a
// store with more collections or products than this silently truncates. Cart
// lines are bounded to 100 in the query document itself.
const (
	collectionsPageSize = 10
	productsPageSize    = 50
)

const productFields = `
  id
  title
  handle
  description
  priceRange {
    minVariantPrice {
      amount
      currencyCode
    }
  }
  images(first: 1) {
    edges {
      node {
        url
        altText
        width
        height
      }
    }
  }
  variants(first: 1) {
    edges {
      node {
        id
        title
        priceV2 {
          amount
          currencyCode
        }
        availableForSale
      }
    }
  }
`

const cartFields = `
  id
  checkoutUrl
  cost {
    subtotalAmount {
      amount
      currencyCode
    }
    totalAmount {
      amount
      currencyCode
    }
    totalTaxAmount {
      amount
      currencyCode
    }
  }
  lines(first: 100) {
    edges {
      node {
        id
        quantity
        merchandise {
          ... on ProductVariant {
            id
            title
            priceV2 {
              amount
              currencyCode
            }
            product {
              title
              images(first: 1) {
                edges {
                  node {
                    url
                    altText
                  }
                }
              }
            }
          }
        }
      }
    }
  }
`

const queryCollections = `
query getCollections($first: Int!) {
  collections(first: $first) {
    edges {
      node {
        id
        title
        handle
        description
      }
    }
  }
}`

var queryProducts = `
query getProducts($first: Int!, $sortKey: ProductSortKeys, $reverse: Boolean) {
  products(first: $first, sortKey: $sortKey, reverse: $reverse) {
    edges {
      node {` + productFields + `}
    }
  }
}`

var queryProductsByCollection = `
query getProductsByCollection($handle: String!, $first: Int!) {
  collectionByHandle(handle: $handle) {
    id
    title
    products(first: $first) {
      edges {
        node {` + productFields + `}
      }
    }
  }
}`

var mutationCartCreate = `
mutation cartCreate($input: CartInput!) {
  cartCreate(input: $input) {
    cart {` + cartFields + `}
    userErrors {
      field
      message
    }
  }
}`

var mutationCartLinesAdd = `
mutation cartLinesAdd($cartId: ID!, $lines: [CartLineInput!]!) {
  cartLinesAdd(cartId: $cartId, lines: $lines) {
    cart {` + cartFields + `}
    userErrors {
      field
      message
    }
  }
}`

var mutationCartLinesRemove = `
mutation cartLinesRemove($cartId: ID!, $lineIds: [ID!]!) {
  cartLinesRemove(cartId: $cartId, lineIds: $lineIds) {
    cart {` + cartFields + `}
    userErrors {
      field
      message
    }
  }
}`

var queryCart = `
query getCart($cartId: ID!) {
  cart(id: $cartId) {` + cartFields + `}
}`
