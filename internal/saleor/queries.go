package saleor

// Fixed, pre-declared GraphQL documents. The schema is owned by the
// backend; these documents only select the fields the storefront reads.

const getStoreOfferQuery = `
query GetStoreOffer($id: ID!) {
  page(id: $id) {
    id
    title
    slug
    content
    attributes {
      attribute { slug }
      values { name reference }
    }
  }
}`

const createCheckoutMutation = `
mutation CreateOfferCheckout($input: CheckoutCreateInput!) {
  checkoutCreate(input: $input) {
    checkout {
      id
      email
      shippingMethods { id name }
    }
    errors { field message code }
  }
}`

const updateCheckoutMetadataMutation = `
mutation UpdateCheckoutMetadata($id: ID!, $metadata: [MetadataInput!]!) {
  updateMetadata(id: $id, input: $metadata) {
    errors { field message code }
  }
}`

const updateDeliveryMutation = `
mutation UpdateDelivery($id: ID!, $methodId: ID!) {
  checkoutDeliveryMethodUpdate(id: $id, deliveryMethodId: $methodId) {
    errors { field message code }
  }
}`

const completeCheckoutMutation = `
mutation CompleteCheckout($id: ID!) {
  checkoutComplete(id: $id) {
    order { id }
    errors { field message code }
  }
}`

const getStorePageTypeQuery = `
query GetStorePageType {
  pageTypes(filter: { search: "store" }, first: 1) {
    edges {
      node { id name }
    }
  }
}`

const getStorePagesQuery = `
query GetStorePages($pageTypeId: ID!) {
  pages(filter: { pageTypes: [$pageTypeId] }, first: 100) {
    edges {
      node { id title slug }
    }
  }
}`

const getStorePageQuery = `
query GetStorePage($id: ID!) {
  page(id: $id) {
    id
    title
    slug
    attributes {
      attribute { slug }
      values { name reference }
    }
  }
}`

const getStoreOffersQuery = `
query GetStoreOffers($ids: [ID!]!) {
  pages(filter: { ids: $ids }, first: 100) {
    edges {
      node {
        id
        title
        slug
        content
        attributes {
          attribute { slug }
          values { name reference }
        }
      }
    }
  }
}`

const getVariantQuery = `
query GetVariant($id: ID!, $channel: String!) {
  productVariant(id: $id, channel: $channel) {
    id
    name
    pricing {
      price {
        gross { amount currency }
      }
    }
  }
}`
